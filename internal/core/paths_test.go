package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolvePaths_UserDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvClaudeDir, "")
	os.Unsetenv(EnvClaudeDir)
	t.Setenv(EnvDevflowHome, "")
	os.Unsetenv(EnvDevflowHome)

	paths, warnings, err := ResolvePaths(ScopeUser)
	if err != nil {
		t.Fatalf("ResolvePaths() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if paths.ClaudeDir != filepath.Join(home, ".claude") {
		t.Errorf("ClaudeDir = %q", paths.ClaudeDir)
	}
	if paths.DevflowDir != filepath.Join(home, ".devflow") {
		t.Errorf("DevflowDir = %q", paths.DevflowDir)
	}
	if paths.GitRoot != "" {
		t.Errorf("GitRoot = %q, want empty for user scope", paths.GitRoot)
	}
}

func TestResolvePaths_UserOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	override := filepath.Join(home, "custom-claude")
	t.Setenv(EnvClaudeDir, override)

	paths, warnings, err := ResolvePaths(ScopeUser)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("override inside home should not warn: %v", warnings)
	}
	if paths.ClaudeDir != override {
		t.Errorf("ClaudeDir = %q, want %q", paths.ClaudeDir, override)
	}
}

func TestResolvePaths_RelativeOverrideIsFatal(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvClaudeDir, "relative/path")

	_, _, err := ResolvePaths(ScopeUser)
	if err == nil {
		t.Fatal("expected error for relative override")
	}
	if !strings.Contains(err.Error(), EnvClaudeDir) {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestResolvePaths_OutsideHomeWarns(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	outside := filepath.Join(t.TempDir(), "elsewhere")
	t.Setenv(EnvDevflowHome, outside)

	paths, warnings, err := ResolvePaths(ScopeUser)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %v", warnings)
	}
	if paths.DevflowDir != outside {
		t.Errorf("override not honored: %q", paths.DevflowDir)
	}
}

func TestResolvePaths_LocalRequiresGitRoot(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, _, err := ResolvePaths(ScopeLocal)
	if err == nil {
		t.Fatal("expected error outside a git repository")
	}
	if !strings.Contains(err.Error(), "git init") {
		t.Errorf("error should suggest a remediation: %v", err)
	}
}

func TestResolvePaths_LocalFindsRootUpward(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(nested)

	paths, _, err := ResolvePaths(ScopeLocal)
	if err != nil {
		t.Fatal(err)
	}
	// Resolve symlinks: on some systems TempDir paths go through /private.
	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(paths.GitRoot)
	if gotRoot != wantRoot {
		t.Errorf("GitRoot = %q, want %q", gotRoot, wantRoot)
	}
	if filepath.Base(paths.ClaudeDir) != ".claude" {
		t.Errorf("ClaudeDir = %q", paths.ClaudeDir)
	}
}

func TestResolvePaths_UnknownScope(t *testing.T) {
	if _, _, err := ResolvePaths(Scope("global")); err == nil {
		t.Fatal("expected error for unknown scope")
	}
}
