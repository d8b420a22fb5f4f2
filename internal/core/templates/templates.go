// Package templates holds the static install payloads compiled into the
// binary via go:embed, so every distribution channel can produce them
// without network access or extra files.
package templates

import (
	_ "embed"
)

// Settings is the settings.json template. The {{DEVFLOW_HOME}} placeholder
// is substituted with the resolved DevFlow directory at install time.
//
//go:embed settings.json
var Settings string

// ClaudeMD is the root instruction file written to the Claude directory.
//
//go:embed CLAUDE.md
var ClaudeMD string

// ClaudeIgnore is the ignore-file written alongside the settings.
//
//go:embed claudeignore
var ClaudeIgnore string

//go:embed hooks/session-start.sh
var sessionStartHook string

//go:embed hooks/post-write.sh
var postWriteHook string

// HookScripts maps hook script file names to their packaged content.
// They are written under DevflowDir/hooks and referenced by the settings
// template.
var HookScripts = map[string]string{
	"session-start.sh": sessionStartHook,
	"post-write.sh":    postWriteHook,
}
