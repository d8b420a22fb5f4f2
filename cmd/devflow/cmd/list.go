package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devflowhq/devflow/internal/core"
	"github.com/devflowhq/devflow/internal/presenter"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List plugins and their declared assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _ := cmd.Flags().GetString("root")
		if root == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			root = cwd
		}

		registry, err := core.LoadAssetRegistry(root)
		if err != nil {
			return err
		}

		for _, p := range core.Plugins {
			header := p.Name
			if p.Optional {
				header += " (optional)"
			}
			presenter.Section(header)
			presenter.Info(p.Description)

			for _, name := range p.Skills {
				presenter.Info("  skill  " + describeAsset(name, registry.Skills))
			}
			for _, name := range p.Agents {
				presenter.Info("  agent  " + describeAsset(name, registry.Agents))
			}
			for _, name := range p.Commands {
				presenter.Info("  command " + name)
			}
			presenter.Info("")
		}
		return nil
	},
}

// describeAsset renders an asset line with its registry description, or a
// missing marker when the declaration does not resolve.
func describeAsset(name string, available map[string]core.SharedAsset) string {
	asset, ok := available[name]
	if !ok {
		return fmt.Sprintf("%-28s (missing from shared registry)", name)
	}
	if asset.Description == "" {
		return name
	}
	return fmt.Sprintf("%-28s %s", name, asset.Description)
}

func init() {
	listCmd.Flags().String("root", "", "Repository root holding skills/ and agents/ (default: cwd)")
	rootCmd.AddCommand(listCmd)
}
