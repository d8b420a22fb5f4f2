package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devflowhq/devflow/internal/core"
	"github.com/devflowhq/devflow/internal/presenter"
	"github.com/devflowhq/devflow/internal/tui"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove everything DevFlow installed",
	Long: `Remove every DevFlow-owned file for the selected scope: all declared
plugin assets and commands, files left behind under deprecated names by
earlier releases, the static templates, the DevFlow directory tree, and
the shell hook. Settings keys you added yourself are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := resolveScope(cmd)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && isInteractive(cmd) {
			if !tui.Confirm(fmt.Sprintf("Remove the DevFlow installation at %s scope?", scope)) {
				presenter.Info("Aborted.")
				return nil
			}
		}

		paths, err := core.Uninstall(cmd.Context(), scope)
		if err != nil {
			return err
		}

		presenter.Success(fmt.Sprintf("Removed DevFlow installation under %s", paths.ClaudeDir))
		return nil
	},
}

func init() {
	uninstallCmd.Flags().String("scope", "user", "Installation scope: user or local")
	uninstallCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	uninstallCmd.Flags().Bool("non-interactive", false, "Never prompt; take the safe default")
	rootCmd.AddCommand(uninstallCmd)
}
