package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/devflowhq/devflow/internal/core"
	"github.com/devflowhq/devflow/internal/core/shell"
	"github.com/devflowhq/devflow/internal/presenter"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the shell safe-delete hook on its own",
}

// resolveDialect picks the dialect from --shell or auto-detection. Unlike
// the full install, a hook-only invocation that cannot find a supported
// shell is an error: the hook is the only thing that was asked for.
func resolveDialect(cmd *cobra.Command) (shell.Dialect, error) {
	if name, _ := cmd.Flags().GetString("shell"); name != "" {
		return shell.ParseDialect(name)
	}
	dialect, ok := shell.Detect(runtime.GOOS)
	if !ok {
		return "", fmt.Errorf("could not detect a supported shell from $SHELL; pass --shell explicitly")
	}
	return dialect, nil
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the safe-delete hook into the shell profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		dialect, err := resolveDialect(cmd)
		if err != nil {
			return err
		}
		trash, _ := cmd.Flags().GetString("trash-command")
		if err := core.InstallHookFor(dialect, trash); err != nil {
			return err
		}
		presenter.Success(fmt.Sprintf("safe-delete hook installed for %s", dialect))
		return nil
	},
}

var hookRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the safe-delete hook from the shell profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		dialect, err := resolveDialect(cmd)
		if err != nil {
			return err
		}
		removed, err := core.RemoveHookFor(dialect)
		if err != nil {
			return err
		}
		if removed {
			presenter.Success(fmt.Sprintf("safe-delete hook removed for %s", dialect))
		} else {
			presenter.Info("no hook installed; nothing to do")
		}
		return nil
	},
}

var hookStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the safe-delete hook is installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		dialect, err := resolveDialect(cmd)
		if err != nil {
			return err
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		profilePath := shell.ProfilePath(dialect, home, runtime.GOOS)
		installed, err := shell.IsInstalled(profilePath)
		if err != nil {
			return err
		}
		if installed {
			presenter.Success(fmt.Sprintf("installed in %s", profilePath))
		} else {
			presenter.Info(fmt.Sprintf("not installed (%s)", profilePath))
		}
		return nil
	},
}

func init() {
	hookCmd.PersistentFlags().String("shell", "", "Shell dialect (bash, zsh, fish, powershell)")
	hookInstallCmd.Flags().String("trash-command", "", "Trash utility the hook routes deletions through")
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookRemoveCmd)
	hookCmd.AddCommand(hookStatusCmd)
	rootCmd.AddCommand(hookCmd)
}
