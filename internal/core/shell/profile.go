package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsInstalled reports whether the profile file already carries the block.
// A missing file is simply "not installed".
func IsInstalled(profilePath string) (bool, error) {
	data, err := os.ReadFile(profilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", profilePath, err)
	}
	return HasBlock(string(data)), nil
}

// Install appends the block to the profile file, creating it (and parent
// directories) as needed. A file that already carries the block is a
// no-op, which keeps repeated installs byte-identical.
func Install(profilePath, block string) error {
	data, err := os.ReadFile(profilePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", profilePath, err)
	}
	content := string(data)

	if HasBlock(content) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(profilePath), 0o755); err != nil {
		return fmt.Errorf("creating profile directory: %w", err)
	}
	return os.WriteFile(profilePath, []byte(InsertBlock(content, block)), 0o644)
}

// Remove strips the block from the profile file. Returns false when there
// was nothing to do (missing file or absent markers). When deleteIfEmpty
// is set and stripping leaves no content, the file itself is deleted
// rather than left as a zero-byte artifact — dedicated function files
// (fish) must disappear entirely.
func Remove(profilePath string, deleteIfEmpty bool) (bool, error) {
	data, err := os.ReadFile(profilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", profilePath, err)
	}

	remaining, ok := RemoveBlock(string(data))
	if !ok {
		return false, nil
	}

	if deleteIfEmpty && strings.TrimSpace(remaining) == "" {
		if err := os.Remove(profilePath); err != nil {
			return false, fmt.Errorf("deleting emptied %s: %w", profilePath, err)
		}
		return true, nil
	}

	if err := os.WriteFile(profilePath, []byte(remaining), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", profilePath, err)
	}
	return true, nil
}
