package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	claudeDirName  = ".claude"
	devflowDirName = ".devflow"

	// EnvClaudeDir and EnvDevflowHome override the user-scope roots.
	// Values must be absolute paths.
	EnvClaudeDir   = "DEVFLOW_CLAUDE_DIR"
	EnvDevflowHome = "DEVFLOW_HOME"
)

// ResolvePaths resolves installation roots for the given scope along with
// any non-fatal warnings. Every call re-resolves from scratch: the working
// directory and environment may change between calls in a long-lived
// process, and the probe is cheap.
func ResolvePaths(scope Scope) (*Paths, []string, error) {
	switch scope {
	case ScopeUser:
		return resolveUserPaths()
	case ScopeLocal:
		return resolveLocalPaths()
	default:
		return nil, nil, fmt.Errorf("unknown scope %q (use %q or %q)", scope, ScopeUser, ScopeLocal)
	}
}

func resolveUserPaths() (*Paths, []string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("getting home directory: %w", err)
	}

	var warnings []string

	claudeDir := filepath.Join(home, claudeDirName)
	if override, ok := lookupOverride(EnvClaudeDir); ok {
		if !filepath.IsAbs(override) {
			return nil, nil, fmt.Errorf("%s must be an absolute path, got %q (unset it or use an absolute path)", EnvClaudeDir, override)
		}
		if !strings.HasPrefix(override, home+string(filepath.Separator)) {
			warnings = append(warnings, fmt.Sprintf("%s points outside your home directory: %s", EnvClaudeDir, override))
		}
		claudeDir = override
	}

	devflowDir := filepath.Join(home, devflowDirName)
	if override, ok := lookupOverride(EnvDevflowHome); ok {
		if !filepath.IsAbs(override) {
			return nil, nil, fmt.Errorf("%s must be an absolute path, got %q (unset it or use an absolute path)", EnvDevflowHome, override)
		}
		if !strings.HasPrefix(override, home+string(filepath.Separator)) {
			warnings = append(warnings, fmt.Sprintf("%s points outside your home directory: %s", EnvDevflowHome, override))
		}
		devflowDir = override
	}

	return &Paths{ClaudeDir: claudeDir, DevflowDir: devflowDir}, warnings, nil
}

func resolveLocalPaths() (*Paths, []string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("getting current directory: %w", err)
	}

	root, ok := findGitRoot(cwd)
	if !ok {
		return nil, nil, fmt.Errorf("local scope requires a git repository; run 'git init' or use --scope user")
	}

	return &Paths{
		ClaudeDir:  filepath.Join(root, claudeDirName),
		DevflowDir: filepath.Join(root, devflowDirName),
		GitRoot:    root,
	}, nil, nil
}

// findGitRoot walks upward from dir looking for a .git entry. A .git file
// (worktree/submodule pointer) counts the same as a directory.
func findGitRoot(dir string) (string, bool) {
	for {
		if pathExists(filepath.Join(dir, ".git")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
