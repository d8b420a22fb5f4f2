package core

import (
	"fmt"
	"path/filepath"
)

// Deprecated asset and command names from earlier releases. Consulted only
// during upgrade and uninstall cleanup, never during normal operation.
var (
	legacySkills = []string{
		"spec-workflow",     // renamed to spec-driven-development in 0.4
		"review-checklist",  // folded into code-review in 0.4
		"planning-basics",   // removed in 0.5
	}
	legacyCommands = []string{
		"devflow-plan",   // renamed to plan in 0.4
		"devflow-verify", // renamed to verify in 0.4
	}
	legacyAgents = []string{
		"orchestrator", // renamed to coordinator in 0.5
	}
)

// Installed asset locations under ClaudeDir. The external runtime reads
// these; the engine only places and removes them.
const (
	installedCommandsDir = "commands"
	installedSkillsDir   = "skills"
	installedAgentsDir   = "agents"
)

// CleanupLegacy removes any installed files matching deprecated names.
// Deletion is "ensure gone": a legacy file that is already absent is
// success, not an error. Safe to call on every upgrade.
func CleanupLegacy(paths *Paths) error {
	for _, name := range legacySkills {
		if err := ensureGone(filepath.Join(paths.ClaudeDir, installedSkillsDir, name)); err != nil {
			return fmt.Errorf("removing legacy skill %q: %w", name, err)
		}
	}
	for _, name := range legacyCommands {
		if err := ensureGone(filepath.Join(paths.ClaudeDir, installedCommandsDir, name+agentFileExt)); err != nil {
			return fmt.Errorf("removing legacy command %q: %w", name, err)
		}
	}
	for _, name := range legacyAgents {
		if err := ensureGone(filepath.Join(paths.ClaudeDir, installedAgentsDir, name+agentFileExt)); err != nil {
			return fmt.Errorf("removing legacy agent %q: %w", name, err)
		}
	}
	return nil
}

// RemoveDeclaredAssets removes every currently-declared command, skill and
// agent for the given plugins from ClaudeDir. Used by full uninstall,
// together with CleanupLegacy, to leave zero DevFlow-owned asset files.
func RemoveDeclaredAssets(paths *Paths, plugins []PluginDefinition) error {
	for _, p := range plugins {
		for _, name := range p.Skills {
			if err := ensureGone(filepath.Join(paths.ClaudeDir, installedSkillsDir, name)); err != nil {
				return fmt.Errorf("removing skill %q: %w", name, err)
			}
		}
		for _, name := range p.Commands {
			if err := ensureGone(filepath.Join(paths.ClaudeDir, installedCommandsDir, name+agentFileExt)); err != nil {
				return fmt.Errorf("removing command %q: %w", name, err)
			}
		}
		for _, name := range p.Agents {
			if err := ensureGone(filepath.Join(paths.ClaudeDir, installedAgentsDir, name+agentFileExt)); err != nil {
				return fmt.Errorf("removing agent %q: %w", name, err)
			}
		}
	}

	// Drop the now-empty asset directories, but never a non-empty one:
	// hand-authored files the user placed there are not ours to delete.
	cleanupEmptyDir(filepath.Join(paths.ClaudeDir, installedSkillsDir))
	cleanupEmptyDir(filepath.Join(paths.ClaudeDir, installedCommandsDir))
	cleanupEmptyDir(filepath.Join(paths.ClaudeDir, installedAgentsDir))
	return nil
}
