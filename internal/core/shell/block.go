// Package shell generates and manages the DevFlow safe-delete hook in
// shell profile files. The marker-block transforms in this file are pure
// string functions; file IO lives in profile.go.
package shell

import "strings"

// StartMarker and EndMarker delimit the DevFlow-managed region. At most
// one such region may exist per profile file. The engine's contract with
// the rest of the file is purely textual: it never parses anything outside
// the markers.
const (
	StartMarker = "# >>> devflow safe-delete >>>"
	EndMarker   = "# <<< devflow safe-delete <<<"
)

// WrapBlock encloses a hook body in the marker pair.
func WrapBlock(body string) string {
	return StartMarker + "\n" + strings.TrimRight(body, "\n") + "\n" + EndMarker
}

// HasBlock reports whether content contains an installed block.
func HasBlock(content string) bool {
	return strings.Contains(content, StartMarker) && strings.Contains(content, EndMarker)
}

// InsertBlock appends a block to profile content. An empty file gets the
// block verbatim; content already ending in a newline gets the block
// appended directly; content without a trailing newline gets a blank-line
// separator first.
func InsertBlock(content, block string) string {
	block = strings.TrimRight(block, "\n") + "\n"
	switch {
	case content == "":
		return block
	case strings.HasSuffix(content, "\n"):
		return content + block
	default:
		return content + "\n\n" + block
	}
}

// RemoveBlock slices out the delimited region, trimming the blank lines
// around it. Returns the content unchanged with ok=false when either
// marker is absent.
func RemoveBlock(content string) (string, bool) {
	startIdx := strings.Index(content, StartMarker)
	endIdx := strings.Index(content, EndMarker)
	if startIdx < 0 || endIdx < 0 || endIdx < startIdx {
		return content, false
	}

	afterEnd := endIdx + len(EndMarker)
	if afterEnd < len(content) && content[afterEnd] == '\n' {
		afterEnd++
	}

	before := content[:startIdx]
	after := content[afterEnd:]

	before = strings.TrimRight(before, "\n")
	if before != "" {
		before += "\n"
	}
	after = strings.TrimLeft(after, "\n")

	return before + after, true
}
