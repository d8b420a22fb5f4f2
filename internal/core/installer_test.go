package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/devflowhq/devflow/internal/core/shell"
)

func setupUserHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvClaudeDir, "")
	os.Unsetenv(EnvClaudeDir)
	t.Setenv(EnvDevflowHome, "")
	os.Unsetenv(EnvDevflowHome)
	return home
}

func TestInstall_FreshUserScope(t *testing.T) {
	home := setupUserHome(t)

	report, err := Install(context.Background(), InstallOptions{
		Scope:    ScopeUser,
		SkipHook: true,
	})
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if err := report.Err(); err != nil {
		t.Fatalf("install steps failed: %v", err)
	}

	claudeDir := filepath.Join(home, ".claude")
	devflowDir := filepath.Join(home, ".devflow")

	for _, p := range []string{
		filepath.Join(claudeDir, SettingsFileName),
		filepath.Join(claudeDir, ClaudeMDFileName),
		filepath.Join(claudeDir, IgnoreFileName),
		filepath.Join(devflowDir, "hooks", "session-start.sh"),
		filepath.Join(devflowDir, "docs", "specs"),
		filepath.Join(devflowDir, "docs", "plans"),
		filepath.Join(devflowDir, "docs", "research"),
		filepath.Join(devflowDir, "docs", "archive"),
	} {
		if !pathExists(p) {
			t.Errorf("expected %s to exist", p)
		}
	}

	if !report.HookSkipped {
		t.Error("HookSkipped should be set when --skip-hook is used")
	}
}

func TestInstall_SecondRunIsByteIdentical(t *testing.T) {
	home := setupUserHome(t)

	if _, err := Install(context.Background(), InstallOptions{Scope: ScopeUser, SkipHook: true}); err != nil {
		t.Fatal(err)
	}
	settingsPath := filepath.Join(home, ".claude", SettingsFileName)
	first, err := os.ReadFile(settingsPath)
	if err != nil {
		t.Fatal(err)
	}
	claudeMD, err := os.ReadFile(filepath.Join(home, ".claude", ClaudeMDFileName))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Install(context.Background(), InstallOptions{Scope: ScopeUser, SkipHook: true}); err != nil {
		t.Fatal(err)
	}

	second, _ := os.ReadFile(settingsPath)
	if string(first) != string(second) {
		t.Error("settings changed on the second run")
	}
	claudeMD2, _ := os.ReadFile(filepath.Join(home, ".claude", ClaudeMDFileName))
	if string(claudeMD) != string(claudeMD2) {
		t.Error("CLAUDE.md changed on the second run")
	}
}

func TestInstall_LocalScopeWithoutRepoIsFatal(t *testing.T) {
	setupUserHome(t)
	t.Chdir(t.TempDir())

	_, err := Install(context.Background(), InstallOptions{Scope: ScopeLocal, SkipHook: true})
	if err == nil {
		t.Fatal("expected fatal error for local scope without a repository")
	}
}

func TestInstall_WithDistTree(t *testing.T) {
	home := setupUserHome(t)

	// Build a distribution tree first.
	root := t.TempDir()
	writeSharedAssets(t, root, []string{"spec-driven-development", "code-review"}, []string{"planner", "implementer"})
	corePlugin, _ := PluginByName("core")
	reg, err := LoadAssetRegistry(root)
	if err != nil {
		t.Fatal(err)
	}
	results := NewDistributor(reg, root).BuildAll(context.Background(), []PluginDefinition{corePlugin})
	if HasErrors(results) {
		t.Fatalf("build errors: %+v", results)
	}

	report, err := Install(context.Background(), InstallOptions{
		Scope:    ScopeUser,
		Plugins:  []PluginDefinition{corePlugin},
		DistDir:  filepath.Join(root, PluginsDir),
		SkipHook: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := report.Err(); err != nil {
		t.Fatalf("install steps failed: %v", err)
	}

	for _, p := range []string{
		filepath.Join(home, ".claude", "skills", "spec-driven-development", "SKILL.md"),
		filepath.Join(home, ".claude", "skills", "code-review", "SKILL.md"),
		filepath.Join(home, ".claude", "agents", "planner.md"),
		filepath.Join(home, ".claude", "agents", "implementer.md"),
	} {
		if !pathExists(p) {
			t.Errorf("expected installed asset %s", p)
		}
	}
}

func TestInstall_StepFailureDoesNotBlockOthers(t *testing.T) {
	home := setupUserHome(t)

	// Point the installer at a dist tree that does not exist: the asset
	// step fails, but templates and directories are still written.
	corePlugin, _ := PluginByName("core")
	report, err := Install(context.Background(), InstallOptions{
		Scope:    ScopeUser,
		Plugins:  []PluginDefinition{corePlugin},
		DistDir:  filepath.Join(t.TempDir(), "missing"),
		SkipHook: true,
	})
	if err != nil {
		t.Fatalf("non-scope failures must not be fatal: %v", err)
	}
	if report.Err() == nil {
		t.Fatal("expected the asset step to be reported as failed")
	}

	if !pathExists(filepath.Join(home, ".claude", ClaudeMDFileName)) {
		t.Error("template step should still have run")
	}
	if !pathExists(filepath.Join(home, ".devflow", "docs", "specs")) {
		t.Error("directory step should still have run")
	}
}

func TestInstall_UpgradeRemovesLegacyFiles(t *testing.T) {
	home := setupUserHome(t)

	stale := filepath.Join(home, ".claude", "skills", "spec-workflow")
	if err := os.MkdirAll(stale, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := Install(context.Background(), InstallOptions{Scope: ScopeUser, SkipHook: true}); err != nil {
		t.Fatal(err)
	}

	if pathExists(stale) {
		t.Error("legacy skill survived the upgrade")
	}
}

func TestInstallAndRemoveHookFor(t *testing.T) {
	home := setupUserHome(t)

	if err := InstallHookFor(shell.Zsh, ""); err != nil {
		t.Fatal(err)
	}
	profile := filepath.Join(home, ".zshrc")
	data, err := os.ReadFile(profile)
	if err != nil {
		t.Fatal(err)
	}
	if !shell.HasBlock(string(data)) {
		t.Fatal("hook block not installed")
	}

	// Install again: idempotent.
	if err := InstallHookFor(shell.Zsh, ""); err != nil {
		t.Fatal(err)
	}
	again, _ := os.ReadFile(profile)
	if string(data) != string(again) {
		t.Error("second hook install changed the profile")
	}

	removed, err := RemoveHookFor(shell.Zsh)
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Error("expected removal to report work done")
	}
	removed, err = RemoveHookFor(shell.Zsh)
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Error("second removal should be a no-op")
	}
}

func TestUninstall_FullTeardown(t *testing.T) {
	home := setupUserHome(t)

	if _, err := Install(context.Background(), InstallOptions{Scope: ScopeUser, SkipHook: true}); err != nil {
		t.Fatal(err)
	}
	// Leave a deprecated skill from an earlier release behind.
	stale := filepath.Join(home, ".claude", "skills", "spec-workflow")
	if err := os.MkdirAll(stale, 0o755); err != nil {
		t.Fatal(err)
	}
	// And an installed declared command.
	cmdFile := filepath.Join(home, ".claude", "commands", "plan.md")
	if err := os.MkdirAll(filepath.Dir(cmdFile), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cmdFile, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Uninstall(context.Background(), ScopeUser); err != nil {
		t.Fatalf("Uninstall() error: %v", err)
	}

	for _, p := range []string{
		stale,
		cmdFile,
		filepath.Join(home, ".claude", ClaudeMDFileName),
		filepath.Join(home, ".claude", IgnoreFileName),
		filepath.Join(home, ".devflow"),
	} {
		if pathExists(p) {
			t.Errorf("%s still exists after uninstall", p)
		}
	}
}
