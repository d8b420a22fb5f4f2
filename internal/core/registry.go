package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// SharedSkillsDir and SharedAgentsDir are the canonical source
	// directories at the repository root, relative to the build root.
	SharedSkillsDir = "skills"
	SharedAgentsDir = "agents"

	skillFileName  = "SKILL.md"
	agentFileExt   = ".md"
	frontmatterSep = "---"
)

// Plugins is the closed set of plugin definitions DevFlow ships.
// Registry order matters: the first plugin declaring an asset owns it
// for reporting purposes (see ResolveOwnership).
var Plugins = []PluginDefinition{
	{
		Name:        "core",
		Description: "Spec-driven planning and implementation workflow",
		Commands:    []string{"plan", "implement", "verify"},
		Agents:      []string{"planner", "implementer"},
		Skills:      []string{"spec-driven-development", "code-review"},
	},
	{
		Name:        "quality",
		Description: "Review and testing workflow",
		Commands:    []string{"review", "test-plan"},
		Agents:      []string{"reviewer"},
		Skills:      []string{"code-review", "testing-strategy"},
	},
	{
		Name:        "teams",
		Description: "Multi-agent peer collaboration",
		Commands:    []string{"team"},
		Agents:      []string{"coordinator"},
		Skills:      []string{"team-coordination"},
		Optional:    true,
	},
}

// PluginByName returns the plugin with the given name from the static table.
func PluginByName(name string) (PluginDefinition, bool) {
	for _, p := range Plugins {
		if p.Name == name {
			return p, true
		}
	}
	return PluginDefinition{}, false
}

// SelectPlugins resolves a list of plugin names against the static table.
// An empty list selects every non-optional plugin.
func SelectPlugins(names []string) ([]PluginDefinition, error) {
	if len(names) == 0 {
		var defaults []PluginDefinition
		for _, p := range Plugins {
			if !p.Optional {
				defaults = append(defaults, p)
			}
		}
		return defaults, nil
	}

	var result []PluginDefinition
	for _, name := range names {
		name = strings.TrimSpace(name)
		p, ok := PluginByName(name)
		if !ok {
			var valid []string
			for _, known := range Plugins {
				valid = append(valid, known.Name)
			}
			return nil, fmt.Errorf("unknown plugin %q; available: %s", name, strings.Join(valid, ", "))
		}
		result = append(result, p)
	}
	return result, nil
}

// AssetRegistry enumerates the shared skills and agents available under a
// source root. Skills are directories containing a SKILL.md; agents are
// single markdown documents.
type AssetRegistry struct {
	Skills map[string]SharedAsset
	Agents map[string]SharedAsset
}

// LoadAssetRegistry enumerates root/skills and root/agents. A missing
// source directory yields an empty namespace, not an error — validation
// against plugin declarations happens later, per plugin.
func LoadAssetRegistry(root string) (*AssetRegistry, error) {
	reg := &AssetRegistry{
		Skills: make(map[string]SharedAsset),
		Agents: make(map[string]SharedAsset),
	}

	skillsDir := filepath.Join(root, SharedSkillsDir)
	entries, err := os.ReadDir(skillsDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading shared skills directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(skillsDir, entry.Name())
		manifest := filepath.Join(dir, skillFileName)
		if _, err := os.Stat(manifest); err != nil {
			continue // not a skill directory
		}
		desc, _ := readFrontmatterDescription(manifest)
		reg.Skills[entry.Name()] = SharedAsset{
			Name:        entry.Name(),
			Description: desc,
			Path:        dir,
		}
	}

	agentsDir := filepath.Join(root, SharedAgentsDir)
	entries, err = os.ReadDir(agentsDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading shared agents directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), agentFileExt) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), agentFileExt)
		path := filepath.Join(agentsDir, entry.Name())
		desc, _ := readFrontmatterDescription(path)
		reg.Agents[name] = SharedAsset{
			Name:        name,
			Description: desc,
			Path:        path,
		}
	}

	return reg, nil
}

// SkillNames returns the sorted skill names in the registry.
func (r *AssetRegistry) SkillNames() []string {
	names := make([]string, 0, len(r.Skills))
	for name := range r.Skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AgentNames returns the sorted agent names in the registry.
func (r *AssetRegistry) AgentNames() []string {
	names := make([]string, 0, len(r.Agents))
	for name := range r.Agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// assetFrontmatter is the slice of YAML frontmatter we care about.
// Asset content is otherwise opaque to the engine.
type assetFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// readFrontmatterDescription extracts the description field from a markdown
// document's YAML frontmatter. Documents without frontmatter are fine; the
// description is cosmetic (used by `devflow list`), never load-bearing.
func readFrontmatterDescription(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	content := strings.TrimPrefix(string(data), "\uFEFF")
	if !strings.HasPrefix(content, frontmatterSep) {
		return "", nil
	}
	rest := content[len(frontmatterSep):]
	idx := strings.Index(rest, "\n"+frontmatterSep)
	if idx < 0 {
		return "", nil
	}

	var fm assetFrontmatter
	if err := yaml.Unmarshal([]byte(rest[:idx]), &fm); err != nil {
		return "", nil // unparseable frontmatter is not an error
	}
	return fm.Description, nil
}
