package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devflowhq/devflow/internal/core"
	"github.com/devflowhq/devflow/internal/presenter"
	"github.com/devflowhq/devflow/internal/tui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Install or upgrade the DevFlow configuration",
	Long: `Install the DevFlow runtime configuration: settings, the root
instruction file, the ignore-file, the documentation tree, and (unless
skipped) a shell hook that routes rm through the trash.

Running init again upgrades in place. Your settings edits are merged,
never overwritten without confirmation, and legacy files from earlier
releases are cleaned up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := resolveScope(cmd)
		if err != nil {
			return err
		}

		pluginFlag, _ := cmd.Flags().GetString("plugin")
		plugins, err := core.SelectPlugins(splitNames(pluginFlag))
		if err != nil {
			return err
		}

		teams, _ := cmd.Flags().GetBool("teams")
		override, _ := cmd.Flags().GetBool("override-settings")
		skipHook, _ := cmd.Flags().GetBool("skip-hook")
		distDir, _ := cmd.Flags().GetString("dist")

		opts := core.InstallOptions{
			Scope:            scope,
			Plugins:          plugins,
			TeamsEnabled:     teams,
			OverrideSettings: override,
			SkipHook:         skipHook,
			DistDir:          distDir,
		}
		if isInteractive(cmd) {
			opts.Confirm = tui.Confirm
		}

		report, err := core.Install(cmd.Context(), opts)
		if err != nil {
			return err
		}

		for _, warning := range report.Warnings {
			presenter.Warning(warning)
		}

		presenter.Section("DevFlow install")
		for _, step := range report.Steps {
			if step.Err != nil {
				presenter.Error(step.Err, string(step.Step))
				continue
			}
			presenter.Success(string(step.Step))
		}
		if report.HookSkipped {
			presenter.Info("shell hook: skipped")
		}
		presenter.Info(fmt.Sprintf("Claude directory:  %s", report.Paths.ClaudeDir))
		presenter.Info(fmt.Sprintf("DevFlow directory: %s", report.Paths.DevflowDir))

		return report.Err()
	},
}

func init() {
	initCmd.Flags().String("scope", "user", "Installation scope: user or local")
	initCmd.Flags().String("plugin", "", "Comma-separated plugin names (default: all non-optional)")
	initCmd.Flags().String("dist", "", "Built distribution tree to install plugin assets from")
	initCmd.Flags().Bool("teams", false, "Enable multi-agent teams mode")
	initCmd.Flags().Bool("override-settings", false, "Replace a conflicting settings file without prompting")
	initCmd.Flags().Bool("skip-hook", false, "Skip the shell safe-delete hook")
	initCmd.Flags().Bool("non-interactive", false, "Never prompt; take the safe default")
	rootCmd.AddCommand(initCmd)
}
