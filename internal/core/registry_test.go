package core

import (
	"os"
	"path/filepath"
	"testing"
)

// writeSharedAssets builds a shared source root with the given skills and
// agents for distributor/registry tests.
func writeSharedAssets(t *testing.T, root string, skills, agents []string) {
	t.Helper()
	for _, name := range skills {
		dir := filepath.Join(root, SharedSkillsDir, name)
		if err := os.MkdirAll(filepath.Join(dir, "reference"), 0o755); err != nil {
			t.Fatal(err)
		}
		manifest := "---\nname: " + name + "\ndescription: The " + name + " skill\n---\n\n# " + name + "\n"
		if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(manifest), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "reference", "notes.md"), []byte("notes\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range agents {
		dir := filepath.Join(root, SharedAgentsDir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		doc := "---\nname: " + name + "\ndescription: The " + name + " agent\n---\n\nYou are " + name + ".\n"
		if err := os.WriteFile(filepath.Join(dir, name+".md"), []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadAssetRegistry(t *testing.T) {
	root := t.TempDir()
	writeSharedAssets(t, root, []string{"code-review", "testing-strategy"}, []string{"planner"})

	reg, err := LoadAssetRegistry(root)
	if err != nil {
		t.Fatalf("LoadAssetRegistry() error: %v", err)
	}

	if len(reg.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(reg.Skills))
	}
	if len(reg.Agents) != 1 {
		t.Fatalf("expected 1 agent, got %d", len(reg.Agents))
	}

	skill, ok := reg.Skills["code-review"]
	if !ok {
		t.Fatal("code-review skill not enumerated")
	}
	if skill.Description != "The code-review skill" {
		t.Errorf("unexpected description %q", skill.Description)
	}
	if skill.Path != filepath.Join(root, SharedSkillsDir, "code-review") {
		t.Errorf("unexpected path %q", skill.Path)
	}

	agent := reg.Agents["planner"]
	if agent.Description != "The planner agent" {
		t.Errorf("unexpected agent description %q", agent.Description)
	}
}

func TestLoadAssetRegistry_MissingSourceDirs(t *testing.T) {
	reg, err := LoadAssetRegistry(t.TempDir())
	if err != nil {
		t.Fatalf("LoadAssetRegistry() error: %v", err)
	}
	if len(reg.Skills) != 0 || len(reg.Agents) != 0 {
		t.Error("expected empty registry for missing source directories")
	}
}

func TestLoadAssetRegistry_IgnoresNonSkillDirs(t *testing.T) {
	root := t.TempDir()
	writeSharedAssets(t, root, []string{"code-review"}, nil)
	// A directory without SKILL.md is not a skill.
	if err := os.MkdirAll(filepath.Join(root, SharedSkillsDir, "scratch"), 0o755); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadAssetRegistry(root)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := reg.Skills["scratch"]; ok {
		t.Error("directory without SKILL.md enumerated as a skill")
	}
}

func TestSelectPlugins_DefaultSkipsOptional(t *testing.T) {
	selected, err := SelectPlugins(nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range selected {
		if p.Optional {
			t.Errorf("optional plugin %q selected by default", p.Name)
		}
	}
	if len(selected) == 0 {
		t.Fatal("no plugins selected by default")
	}
}

func TestSelectPlugins_UnknownName(t *testing.T) {
	_, err := SelectPlugins([]string{"core", "nope"})
	if err == nil {
		t.Fatal("expected error for unknown plugin name")
	}
}

func TestSelectPlugins_ByName(t *testing.T) {
	selected, err := SelectPlugins([]string{" teams "})
	if err != nil {
		t.Fatal(err)
	}
	if len(selected) != 1 || selected[0].Name != "teams" {
		t.Fatalf("unexpected selection %+v", selected)
	}
}

func TestReadFrontmatterDescription_NoFrontmatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.md")
	if err := os.WriteFile(path, []byte("# Just a doc\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	desc, err := readFrontmatterDescription(path)
	if err != nil {
		t.Fatal(err)
	}
	if desc != "" {
		t.Errorf("expected empty description, got %q", desc)
	}
}

func TestReadFrontmatterDescription_ByteOrderMark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.md")
	content := "\ufeff---\nname: planner\ndescription: Plans work\n---\n\n# planner\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	desc, err := readFrontmatterDescription(path)
	if err != nil {
		t.Fatal(err)
	}
	if desc != "Plans work" {
		t.Errorf("description = %q, want %q", desc, "Plans work")
	}
}
