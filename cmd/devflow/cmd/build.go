package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/devflowhq/devflow/internal/core"
	"github.com/devflowhq/devflow/internal/presenter"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build self-contained plugin distribution trees",
	Long: `Copy each plugin's declared shared skills and agents from the
canonical source directories into that plugin's own subtree under
plugins/. The skills output is wiped and rebuilt so renamed or removed
declarations leave nothing stale behind; hand-authored agents in a
plugin's agents/ directory are preserved.

A plugin that declares an asset missing from the shared registry is
reported and the run exits non-zero, but every other plugin still builds.`,
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

		ownership := core.ResolveOwnership(core.Plugins)
		results := core.NewDistributor(registry, root).BuildAll(cmd.Context(), core.Plugins)

		for _, result := range results {
			if result.OK() {
				presenter.Success(fmt.Sprintf("%s: %d skills, %d agents",
					result.Plugin, len(result.Skills), len(result.Agents)))
				continue
			}
			for _, msg := range result.Errors {
				presenter.Error(fmt.Errorf("%s", msg), result.Plugin)
			}
		}

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			for _, name := range sortedKeys(ownership.Skills) {
				presenter.Info(fmt.Sprintf("skill %-28s first declared by %s", name, ownership.Skills[name]))
			}
			for _, name := range sortedKeys(ownership.Agents) {
				presenter.Info(fmt.Sprintf("agent %-28s first declared by %s", name, ownership.Agents[name]))
			}
		}

		if core.HasErrors(results) {
			return fmt.Errorf("build finished with errors")
		}
		return nil
	},
}

func sortedKeys(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	buildCmd.Flags().String("root", "", "Repository root holding skills/ and agents/ (default: cwd)")
	buildCmd.Flags().Bool("verbose", false, "Print the asset ownership map")
	rootCmd.AddCommand(buildCmd)
}
