// Package core provides the business logic for DevFlow.
// It has zero UI dependencies and is independently testable.
package core

// PluginDefinition describes a deployable bundle of commands, agents and
// skills. The full set of plugins DevFlow knows about is the static table
// in registry.go; there is no dynamic registration.
type PluginDefinition struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Commands    []string `json:"commands,omitempty"`
	Agents      []string `json:"agents,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Optional    bool     `json:"optional,omitempty"`
}

// Scope selects where an installation lands.
type Scope string

const (
	// ScopeUser installs under the user's home directory.
	ScopeUser Scope = "user"
	// ScopeLocal installs under the enclosing git repository root.
	ScopeLocal Scope = "local"
)

// Paths is the resolved triple of installation roots for a scope.
// GitRoot is empty for user scope.
type Paths struct {
	ClaudeDir  string
	DevflowDir string
	GitRoot    string
}

// BuildResult reports the outcome of distributing assets for one plugin.
// A non-empty Errors list marks the plugin (and the whole run) as failed,
// but never stops other plugins from being processed.
type BuildResult struct {
	Plugin string
	Skills []string
	Agents []string
	Errors []string
}

// OK reports whether the plugin was built without errors.
func (r BuildResult) OK() bool { return len(r.Errors) == 0 }

// SharedAsset is an entry enumerated from the shared asset registry.
// Path points at a directory for skills and a single file for agents.
type SharedAsset struct {
	Name        string
	Description string
	Path        string
}
