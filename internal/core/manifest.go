package core

// OwnershipMap records which plugin first declared each shared asset, in
// registry order. It exists for "where did this come from" reporting only;
// every declaring plugin still ships its own physical copy.
type OwnershipMap struct {
	Skills map[string]string
	Agents map[string]string
}

// ResolveOwnership computes the ownership map across the given plugins.
func ResolveOwnership(plugins []PluginDefinition) OwnershipMap {
	m := OwnershipMap{
		Skills: make(map[string]string),
		Agents: make(map[string]string),
	}
	for _, p := range plugins {
		for _, name := range p.Skills {
			if _, claimed := m.Skills[name]; !claimed {
				m.Skills[name] = p.Name
			}
		}
		for _, name := range p.Agents {
			if _, claimed := m.Agents[name]; !claimed {
				m.Agents[name] = p.Name
			}
		}
	}
	return m
}

// SkillOwner returns the name of the plugin that first declared the skill.
func (m OwnershipMap) SkillOwner(name string) (string, bool) {
	owner, ok := m.Skills[name]
	return owner, ok
}

// AgentOwner returns the name of the plugin that first declared the agent.
func (m OwnershipMap) AgentOwner(name string) (string, bool) {
	owner, ok := m.Agents[name]
	return owner, ok
}

// MissingAssets returns the declared skill and agent names that do not
// resolve against the shared registry, for one plugin. Each entry is a
// hard build error for that plugin.
func MissingAssets(p PluginDefinition, reg *AssetRegistry) (skills, agents []string) {
	for _, name := range p.Skills {
		if _, ok := reg.Skills[name]; !ok {
			skills = append(skills, name)
		}
	}
	for _, name := range p.Agents {
		if _, ok := reg.Agents[name]; !ok {
			agents = append(agents, name)
		}
	}
	return skills, agents
}
