package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/go-multierror"

	"github.com/devflowhq/devflow/internal/core/shell"
	"github.com/devflowhq/devflow/internal/core/templates"
	"github.com/devflowhq/devflow/internal/logger"
)

// InstallStep names one state of the installer state machine, in order.
type InstallStep string

const (
	StepResolvingScope      InstallStep = "resolving scope"
	StepWritingSettings     InstallStep = "writing settings"
	StepWritingTemplates    InstallStep = "writing static templates"
	StepCreatingAuxDirs     InstallStep = "creating directory structure"
	StepInstallingAssets    InstallStep = "installing plugin assets"
	StepCleaningLegacy      InstallStep = "removing legacy files"
	StepInstallingShellHook InstallStep = "installing shell hook"
)

// ClaudeMDFileName and IgnoreFileName are the static templates written
// into ClaudeDir.
const (
	ClaudeMDFileName = "CLAUDE.md"
	IgnoreFileName   = ".claudeignore"
)

// docsSubdirs is the fixed auxiliary documentation tree under DevflowDir.
var docsSubdirs = []string{"specs", "plans", "research", "archive"}

// InstallOptions configures a full install/upgrade run.
type InstallOptions struct {
	Scope            Scope
	Plugins          []PluginDefinition
	TeamsEnabled     bool
	OverrideSettings bool
	SkipHook         bool
	// DistDir points at a built distribution tree (see Distributor).
	// Empty means asset placement is left to the external runtime.
	DistDir string
	// TrashCommand overrides the trash utility in the shell hook.
	TrashCommand string
	// Confirm resolves interactive conflicts; nil means non-interactive.
	Confirm func(prompt string) bool
}

// StepResult records one orchestration step's outcome.
type StepResult struct {
	Step InstallStep
	Err  error
}

// InstallReport is the terminal-state summary of an install run. It is
// produced even when steps failed; only a scope-resolution failure aborts
// without a report.
type InstallReport struct {
	Paths    *Paths
	Steps    []StepResult
	Warnings []string
	// HookSkipped is set when no supported shell was detected or the
	// hook was explicitly skipped. An idempotency non-error.
	HookSkipped bool
}

// Err aggregates the failed steps, or nil if everything succeeded.
func (r *InstallReport) Err() error {
	var err *multierror.Error
	for _, s := range r.Steps {
		if s.Err != nil {
			err = multierror.Append(err, fmt.Errorf("%s: %w", s.Step, s.Err))
		}
	}
	return err.ErrorOrNil()
}

// Install runs the orchestrator. Scope resolution failure is fatal and
// returns an error with no report. Every later step is attempted
// regardless of earlier failures, which are collected in the report.
func Install(ctx context.Context, opts InstallOptions) (*InstallReport, error) {
	log := logger.G(ctx)

	paths, warnings, err := ResolvePaths(opts.Scope)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StepResolvingScope, err)
	}
	log.WithField("claude_dir", paths.ClaudeDir).WithField("devflow_dir", paths.DevflowDir).Debug("scope resolved")

	report := &InstallReport{Paths: paths, Warnings: warnings}
	record := func(step InstallStep, err error) {
		report.Steps = append(report.Steps, StepResult{Step: step, Err: err})
		if err != nil {
			log.WithError(err).WithField("step", string(step)).Warn("install step failed")
		}
	}

	settingsWarnings, err := InstallSettings(paths.ClaudeDir, paths.DevflowDir, SettingsInstallOptions{
		TeamsEnabled: opts.TeamsEnabled,
		Override:     opts.OverrideSettings,
		Confirm:      opts.Confirm,
	})
	report.Warnings = append(report.Warnings, settingsWarnings...)
	record(StepWritingSettings, err)

	record(StepWritingTemplates, writeStaticTemplates(paths))
	record(StepCreatingAuxDirs, createAuxDirs(paths))

	if opts.DistDir != "" {
		record(StepInstallingAssets, installAssets(paths, opts.DistDir, opts.Plugins))
	}

	record(StepCleaningLegacy, CleanupLegacy(paths))

	if opts.SkipHook {
		report.HookSkipped = true
	} else {
		skipped, err := installShellHook(opts.TrashCommand)
		report.HookSkipped = skipped
		record(StepInstallingShellHook, err)
	}

	return report, nil
}

// writeStaticTemplates places the root instruction file, the ignore-file,
// and the hook scripts the settings template references. All writes are
// overwrite-safe and idempotent.
func writeStaticTemplates(paths *Paths) error {
	if err := writeFileAtomic(filepath.Join(paths.ClaudeDir, ClaudeMDFileName), []byte(templates.ClaudeMD), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", ClaudeMDFileName, err)
	}
	if err := writeFileAtomic(filepath.Join(paths.ClaudeDir, IgnoreFileName), []byte(templates.ClaudeIgnore), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", IgnoreFileName, err)
	}
	for name, content := range templates.HookScripts {
		path := filepath.Join(paths.DevflowDir, "hooks", name)
		if err := writeFileAtomic(path, []byte(content), 0o755); err != nil {
			return fmt.Errorf("writing hook script %s: %w", name, err)
		}
	}
	return nil
}

// createAuxDirs builds the fixed documentation tree under DevflowDir.
func createAuxDirs(paths *Paths) error {
	for _, sub := range docsSubdirs {
		dir := filepath.Join(paths.DevflowDir, "docs", sub)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// installAssets places the selected plugins' packaged outputs into
// ClaudeDir from a built distribution tree. Commands are plugin-authored
// (not shared), so they are copied only when the package carries them.
func installAssets(paths *Paths, distDir string, plugins []PluginDefinition) error {
	distDir = expandPath(distDir)
	for _, p := range plugins {
		pkgDir := filepath.Join(distDir, p.Name)
		if !dirExists(pkgDir) {
			return fmt.Errorf("plugin package %q not found under %s (run 'devflow build' first)", p.Name, distDir)
		}

		for _, name := range p.Skills {
			src := filepath.Join(pkgDir, pluginSkillsDir, name)
			dst := filepath.Join(paths.ClaudeDir, installedSkillsDir, name)
			if err := os.RemoveAll(dst); err != nil {
				return fmt.Errorf("cleaning skill %q: %w", name, err)
			}
			if err := copyDirectory(src, dst); err != nil {
				return fmt.Errorf("installing skill %q: %w", name, err)
			}
		}
		for _, name := range p.Agents {
			src := filepath.Join(pkgDir, pluginAgentsDir, name+agentFileExt)
			dst := filepath.Join(paths.ClaudeDir, installedAgentsDir, name+agentFileExt)
			if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
				return err
			}
			if err := copyFile(src, dst); err != nil {
				return fmt.Errorf("installing agent %q: %w", name, err)
			}
		}
		for _, name := range p.Commands {
			src := filepath.Join(pkgDir, "commands", name+agentFileExt)
			if !pathExists(src) {
				continue
			}
			dst := filepath.Join(paths.ClaudeDir, installedCommandsDir, name+agentFileExt)
			if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
				return err
			}
			if err := copyFile(src, dst); err != nil {
				return fmt.Errorf("installing command %q: %w", name, err)
			}
		}
	}
	return nil
}

// installShellHook generates and installs the hook for the detected shell.
// An undetected or unsupported shell is a skip, not an error.
func installShellHook(trashCmd string) (skipped bool, err error) {
	dialect, ok := shell.Detect(runtime.GOOS)
	if !ok {
		return true, nil
	}
	return false, InstallHookFor(dialect, trashCmd)
}

// InstallHookFor installs the safe-delete hook for a specific dialect.
// Used both by the orchestrator and the standalone hook command.
func InstallHookFor(dialect shell.Dialect, trashCmd string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}

	profilePath := shell.ProfilePath(dialect, home, runtime.GOOS)
	block := shell.GenerateHook(dialect, runtime.GOOS, trashCmd)
	if block == "" {
		return nil
	}

	installed, err := shell.IsInstalled(profilePath)
	if err != nil {
		return err
	}
	if installed {
		return nil
	}
	return shell.Install(profilePath, block)
}

// RemoveHookFor strips the safe-delete hook for a specific dialect.
// Returns false when there was nothing to remove.
func RemoveHookFor(dialect shell.Dialect) (bool, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return false, fmt.Errorf("getting home directory: %w", err)
	}
	profilePath := shell.ProfilePath(dialect, home, runtime.GOOS)
	return shell.Remove(profilePath, shell.IsFunctionFile(dialect))
}

// Uninstall performs full teardown for a scope: every currently-declared
// asset and command, every legacy one, the static templates, the DevFlow
// directory tree, the teams-mode settings keys, and the shell hook for
// every dialect. User settings and hand-authored files survive.
func Uninstall(ctx context.Context, scope Scope) (*Paths, error) {
	paths, _, err := ResolvePaths(scope)
	if err != nil {
		return nil, err
	}

	var errs *multierror.Error

	if err := RemoveDeclaredAssets(paths, Plugins); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := CleanupLegacy(paths); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := ensureGone(filepath.Join(paths.ClaudeDir, ClaudeMDFileName)); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := ensureGone(filepath.Join(paths.ClaudeDir, IgnoreFileName)); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := ensureGone(paths.DevflowDir); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := StripTeamsFromFile(paths.ClaudeDir); err != nil {
		errs = multierror.Append(errs, err)
	}

	for _, dialect := range shell.Dialects() {
		if _, err := RemoveHookFor(dialect); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	logger.G(ctx).WithField("claude_dir", paths.ClaudeDir).Debug("uninstall finished")
	return paths, errs.ErrorOrNil()
}
