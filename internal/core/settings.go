package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/devflowhq/devflow/internal/core/templates"
)

const (
	// SettingsFileName is the runtime configuration file under ClaudeDir.
	SettingsFileName = "settings.json"

	devflowHomePlaceholder = "{{DEVFLOW_HOME}}"

	hooksKey        = "hooks"
	envKey          = "env"
	teammateModeKey = "teammateMode"

	// TeammateModeValue and TeamsEnvVar form the optional teams-mode
	// feature block. Applying and stripping the block is symmetric.
	TeammateModeValue = "enabled"
	TeamsEnvVar       = "DEVFLOW_TEAMS_ENABLED"
	teamsEnvValue     = "1"
)

// RenderSettingsTemplate substitutes every placeholder occurrence in the
// packaged settings template with the resolved DevFlow directory.
func RenderSettingsTemplate(devflowDir string) string {
	return strings.ReplaceAll(templates.Settings, devflowHomePlaceholder, devflowDir)
}

// ApplyTeamsMode sets the teams-mode flag and environment entry on a
// settings document, in place. An existing env value that is not an
// object is left alone rather than clobbered, so apply-then-strip still
// round-trips on out-of-schema documents.
func ApplyTeamsMode(doc map[string]any) {
	doc[teammateModeKey] = TeammateModeValue
	env, ok := doc[envKey].(map[string]any)
	if !ok {
		if _, exists := doc[envKey]; exists {
			return
		}
		env = make(map[string]any)
		doc[envKey] = env
	}
	env[TeamsEnvVar] = teamsEnvValue
}

// StripTeamsMode removes the teams-mode flag and environment entry from a
// settings document, in place. The env object is dropped entirely if the
// removal leaves it empty, so apply-then-strip round-trips to a document
// deep-equal to the original.
func StripTeamsMode(doc map[string]any) {
	delete(doc, teammateModeKey)
	if env, ok := doc[envKey].(map[string]any); ok {
		delete(env, TeamsEnvVar)
		if len(env) == 0 {
			delete(doc, envKey)
		}
	}
}

// SettingsAction is the placement decision for the settings file.
type SettingsAction int

const (
	// SettingsWriteFresh writes the templated document verbatim.
	SettingsWriteFresh SettingsAction = iota
	// SettingsPatchInPlace re-applies the feature block to the existing
	// document, preserving all unrelated user keys.
	SettingsPatchInPlace
	// SettingsPromptOrWarn is a genuine conflict: the file exists but
	// lacks the expected hooks structure. Interactive sessions confirm
	// before overwriting; non-interactive sessions warn and skip.
	SettingsPromptOrWarn
)

// DecideSettingsAction is the pure three-way placement decision. The
// prompt itself is performed by the caller's adapter; this function never
// touches a terminal or the filesystem.
func DecideSettingsAction(fileExists, hasHooks bool) SettingsAction {
	switch {
	case !fileExists:
		return SettingsWriteFresh
	case hasHooks:
		return SettingsPatchInPlace
	default:
		return SettingsPromptOrWarn
	}
}

// SettingsInstallOptions configures InstallSettings.
type SettingsInstallOptions struct {
	TeamsEnabled bool
	// Override forces a fresh write even over a conflicting file.
	Override bool
	// Confirm resolves the overwrite conflict interactively. A nil func
	// means non-interactive: the conflict is never resolved destructively.
	Confirm func(prompt string) bool
}

// InstallSettings writes or patches ClaudeDir/settings.json. Returned
// warnings are non-fatal; an error means the step failed.
func InstallSettings(claudeDir, devflowDir string, opts SettingsInstallOptions) ([]string, error) {
	path := filepath.Join(claudeDir, SettingsFileName)

	fresh, err := parseSettingsDocument([]byte(RenderSettingsTemplate(devflowDir)))
	if err != nil {
		return nil, fmt.Errorf("parsing packaged settings template: %w", err)
	}
	applyTeams(fresh, opts.TeamsEnabled)

	existing, fileExists, err := readSettingsDocument(path)
	if err != nil {
		return nil, err
	}

	action := DecideSettingsAction(fileExists, existing != nil && hasHooks(existing))
	if opts.Override {
		action = SettingsWriteFresh
	}

	switch action {
	case SettingsWriteFresh:
		return nil, writeSettingsDocument(path, fresh)

	case SettingsPatchInPlace:
		applyTeams(existing, opts.TeamsEnabled)
		return nil, writeSettingsDocument(path, existing)

	default: // SettingsPromptOrWarn
		if opts.Confirm != nil {
			if opts.Confirm(fmt.Sprintf("%s exists but has no hooks configured. Overwrite it?", path)) {
				return nil, writeSettingsDocument(path, fresh)
			}
			return []string{fmt.Sprintf("left %s untouched", path)}, nil
		}
		return []string{fmt.Sprintf("%s exists without the expected hooks; not overwriting (re-run with --override-settings to replace it)", path)}, nil
	}
}

// StripTeamsFromFile removes the teams-mode block from an existing
// settings file, if present. Used during uninstall. A file carrying no
// teams keys is left byte-for-byte untouched: rewriting would destroy
// comments and formatting the run has no reason to disturb.
func StripTeamsFromFile(claudeDir string) error {
	path := filepath.Join(claudeDir, SettingsFileName)
	doc, exists, err := readSettingsDocument(path)
	if err != nil {
		return err
	}
	if !exists || doc == nil || !hasTeamsKeys(doc) {
		return nil
	}
	StripTeamsMode(doc)
	return writeSettingsDocument(path, doc)
}

func hasTeamsKeys(doc map[string]any) bool {
	if _, ok := doc[teammateModeKey]; ok {
		return true
	}
	if env, ok := doc[envKey].(map[string]any); ok {
		if _, ok := env[TeamsEnvVar]; ok {
			return true
		}
	}
	return false
}

func applyTeams(doc map[string]any, enabled bool) {
	if enabled {
		ApplyTeamsMode(doc)
	} else {
		StripTeamsMode(doc)
	}
}

func hasHooks(doc map[string]any) bool {
	_, ok := doc[hooksKey]
	return ok
}

// readSettingsDocument loads and parses an existing settings file. A
// malformed document is reported as nil with exists=true: the caller
// treats it as "no hooks", the safe conflict path, rather than crashing.
func readSettingsDocument(path string) (map[string]any, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading settings: %w", err)
	}

	doc, err := parseSettingsDocument(data)
	if err != nil {
		return nil, true, nil
	}
	return doc, true, nil
}

// parseSettingsDocument parses settings JSON, tolerating comments and
// trailing commas the way user-edited Claude settings files tend to have.
func parseSettingsDocument(data []byte) (map[string]any, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(standardized, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// writeSettingsDocument marshals with stable two-space indentation so
// repeated installs are byte-identical.
func writeSettingsDocument(path string, doc map[string]any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'), 0o644)
}
