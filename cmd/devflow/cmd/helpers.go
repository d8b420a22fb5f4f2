package cmd

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/devflowhq/devflow/internal/core"
)

// isInteractive reports whether prompts may block on a terminal. The
// --non-interactive flag forces the safe defaults even on a TTY.
func isInteractive(cmd *cobra.Command) bool {
	if nonInteractive, _ := cmd.Flags().GetBool("non-interactive"); nonInteractive {
		return false
	}
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// resolveScope parses the --scope flag.
func resolveScope(cmd *cobra.Command) (core.Scope, error) {
	raw, _ := cmd.Flags().GetString("scope")
	scope := core.Scope(strings.TrimSpace(raw))
	if scope != core.ScopeUser && scope != core.ScopeLocal {
		return "", &unknownScopeError{raw: raw}
	}
	return scope, nil
}

type unknownScopeError struct{ raw string }

func (e *unknownScopeError) Error() string {
	return "unknown scope \"" + e.raw + "\" (use \"user\" or \"local\")"
}

// splitNames parses a comma-separated flag value into trimmed names.
func splitNames(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
