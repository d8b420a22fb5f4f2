package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devflowhq/devflow/internal/logger"
)

const (
	// PluginsDir is the distribution output directory relative to the
	// build root. Each plugin gets its own self-contained subtree.
	PluginsDir = "plugins"

	pluginSkillsDir = "skills"
	pluginAgentsDir = "agents"
)

// Distributor copies declared shared assets into each plugin's own
// directory, producing a self-contained distribution tree per plugin.
type Distributor struct {
	registry   *AssetRegistry
	pluginsDir string
}

// NewDistributor creates a Distributor writing under root/plugins.
func NewDistributor(registry *AssetRegistry, root string) *Distributor {
	return &Distributor{
		registry:   registry,
		pluginsDir: filepath.Join(root, PluginsDir),
	}
}

// BuildAll distributes assets for every plugin. Individual plugin failures
// are recorded in that plugin's BuildResult and do not stop the run; the
// caller decides the exit status from the aggregated results.
func (d *Distributor) BuildAll(ctx context.Context, plugins []PluginDefinition) []BuildResult {
	results := make([]BuildResult, 0, len(plugins))
	for _, p := range plugins {
		result := d.buildPlugin(ctx, p)
		logger.G(ctx).WithFields(map[string]interface{}{
			"plugin": p.Name,
			"skills": len(result.Skills),
			"agents": len(result.Agents),
			"errors": len(result.Errors),
		}).Debug("plugin build finished")
		results = append(results, result)
	}
	return results
}

// HasErrors reports whether any plugin in the run accumulated errors.
func HasErrors(results []BuildResult) bool {
	for _, r := range results {
		if !r.OK() {
			return true
		}
	}
	return false
}

// buildPlugin distributes one plugin's declared assets. The skills output
// directory is wiped and rebuilt so that renamed or removed declarations
// leave no stale copies behind. The agents directory is only overlaid:
// plugin-specific, hand-authored agents may coexist there.
func (d *Distributor) buildPlugin(ctx context.Context, p PluginDefinition) BuildResult {
	result := BuildResult{Plugin: p.Name}

	skillsOut := filepath.Join(d.pluginsDir, p.Name, pluginSkillsDir)
	if err := os.RemoveAll(skillsOut); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cleaning skills directory: %v", err))
		return result
	}
	if err := os.MkdirAll(skillsOut, 0o755); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("creating skills directory: %v", err))
		return result
	}

	for _, name := range p.Skills {
		asset, ok := d.registry.Skills[name]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("skill %q not found in shared registry", name))
			continue
		}
		if err := copyDirectory(asset.Path, filepath.Join(skillsOut, name)); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("copying skill %q: %v", name, err))
			continue
		}
		result.Skills = append(result.Skills, name)
	}

	agentsOut := filepath.Join(d.pluginsDir, p.Name, pluginAgentsDir)
	if err := os.MkdirAll(agentsOut, 0o755); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("creating agents directory: %v", err))
		return result
	}

	for _, name := range p.Agents {
		asset, ok := d.registry.Agents[name]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("agent %q not found in shared registry", name))
			continue
		}
		if err := copyFile(asset.Path, filepath.Join(agentsOut, name+agentFileExt)); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("copying agent %q: %v", name, err))
			continue
		}
		result.Agents = append(result.Agents, name)
	}

	return result
}
