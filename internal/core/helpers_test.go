package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyDirectory_SkipsExcluded(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	mustWrite := func(rel, content string) {
		t.Helper()
		path := filepath.Join(src, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	mustWrite("SKILL.md", "keep\n")
	mustWrite("reference/deep/notes.md", "keep\n")
	mustWrite("_draft.md", "skip\n")
	mustWrite("reference/_wip/ideas.md", "skip\n")
	mustWrite(".git/HEAD", "skip\n")
	mustWrite(".DS_Store", "skip\n")

	if err := copyDirectory(src, dst); err != nil {
		t.Fatalf("copyDirectory() error: %v", err)
	}

	for _, rel := range []string{"SKILL.md", "reference/deep/notes.md"} {
		if !pathExists(filepath.Join(dst, rel)) {
			t.Errorf("%s missing from copy", rel)
		}
	}
	for _, rel := range []string{"_draft.md", "reference/_wip", ".git", ".DS_Store"} {
		if pathExists(filepath.Join(dst, rel)) {
			t.Errorf("%s should have been excluded", rel)
		}
	}
}

func TestWriteFileAtomic_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "file.txt")
	if err := writeFileAtomic(path, []byte("content\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "content\n" {
		t.Errorf("unexpected content %q", data)
	}
	if pathExists(path + ".tmp") {
		t.Error("temp file left behind")
	}
}

func TestEnsureGone(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "victim")
	if err := os.MkdirAll(filepath.Join(target, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := ensureGone(target); err != nil {
		t.Fatal(err)
	}
	if pathExists(target) {
		t.Error("target still exists")
	}
	// Absent target is success.
	if err := ensureGone(target); err != nil {
		t.Errorf("second ensureGone errored: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := expandPath("~/dist/plugins"); got != filepath.Join(home, "dist", "plugins") {
		t.Errorf("expandPath(~/dist/plugins) = %q", got)
	}
	if got := expandPath("~"); got != home {
		t.Errorf("expandPath(~) = %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("expandPath(/abs/path) = %q", got)
	}
}

func TestCleanupEmptyDir(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	full := filepath.Join(dir, "full")
	if err := os.MkdirAll(empty, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(full, "f"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cleanupEmptyDir(empty)
	cleanupEmptyDir(full)

	if pathExists(empty) {
		t.Error("empty dir not removed")
	}
	if !pathExists(full) {
		t.Error("non-empty dir removed")
	}
}
