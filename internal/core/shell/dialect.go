package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dialect identifies a supported shell.
type Dialect string

const (
	Bash       Dialect = "bash"
	Zsh        Dialect = "zsh"
	Fish       Dialect = "fish"
	PowerShell Dialect = "powershell"
)

// DefaultTrashCommand is the external utility the hook routes deletions
// through on platforms without a native recycle-bin API.
const DefaultTrashCommand = "trash"

// Detect inspects $SHELL (and the platform) to pick the current dialect.
// An unrecognized shell returns ok=false; that is a no-op for callers,
// not an error.
func Detect(goos string) (Dialect, bool) {
	if goos == "windows" {
		return PowerShell, true
	}
	shellPath := os.Getenv("SHELL")
	switch filepath.Base(shellPath) {
	case "bash":
		return Bash, true
	case "zsh":
		return Zsh, true
	case "fish":
		return Fish, true
	case "pwsh", "powershell":
		return PowerShell, true
	default:
		return "", false
	}
}

// Dialects lists every supported dialect, for validation messages.
func Dialects() []Dialect {
	return []Dialect{Bash, Zsh, Fish, PowerShell}
}

// ParseDialect validates a user-supplied dialect name.
func ParseDialect(name string) (Dialect, error) {
	for _, d := range Dialects() {
		if string(d) == strings.ToLower(strings.TrimSpace(name)) {
			return d, nil
		}
	}
	var valid []string
	for _, d := range Dialects() {
		valid = append(valid, string(d))
	}
	return "", fmt.Errorf("unsupported shell %q; available: %s", name, strings.Join(valid, ", "))
}

// GenerateHook produces the marker-wrapped hook block for a dialect and
// target platform. The hook redefines rm so that non-flag arguments are
// routed to the trash command; flag-only invocations fall through to the
// real rm untouched. Returns "" for dialects this build cannot express.
func GenerateHook(d Dialect, goos, trashCmd string) string {
	if trashCmd == "" {
		trashCmd = DefaultTrashCommand
	}
	var body string
	switch d {
	case Bash, Zsh:
		body = posixHookBody(trashCmd)
	case Fish:
		body = fishHookBody(trashCmd)
	case PowerShell:
		if goos == "windows" {
			body = powershellRecycleBody()
		} else {
			body = powershellTrashBody(trashCmd)
		}
	default:
		return ""
	}
	return WrapBlock(body)
}

// IsFunctionFile reports whether the dialect stores the hook as a
// dedicated one-function-per-file artifact. Removal deletes such a file
// outright when stripping the block empties it.
func IsFunctionFile(d Dialect) bool {
	return d == Fish
}

// ProfilePath returns the conventional profile (or function file) location
// for a dialect, relative to the given home directory.
func ProfilePath(d Dialect, home, goos string) string {
	switch d {
	case Bash:
		return filepath.Join(home, ".bashrc")
	case Zsh:
		return filepath.Join(home, ".zshrc")
	case Fish:
		return filepath.Join(home, ".config", "fish", "functions", "rm.fish")
	case PowerShell:
		if goos == "windows" {
			return filepath.Join(home, "Documents", "PowerShell", "Microsoft.PowerShell_profile.ps1")
		}
		return filepath.Join(home, ".config", "powershell", "Microsoft.PowerShell_profile.ps1")
	default:
		return ""
	}
}

func posixHookBody(trashCmd string) string {
	return `rm() {
    local targets=()
    for arg in "$@"; do
        case "$arg" in
            -*) ;;
            *) targets+=("$arg") ;;
        esac
    done
    if [ ${#targets[@]} -eq 0 ]; then
        command rm "$@"
    else
        ` + trashCmd + ` "${targets[@]}"
    fi
}`
}

func fishHookBody(trashCmd string) string {
	return `function rm --description 'Route deletions to trash instead of unlinking'
    set -l targets
    for arg in $argv
        switch $arg
            case '-*'
            case '*'
                set -a targets $arg
        end
    end
    if test (count $targets) -eq 0
        command rm $argv
    else
        ` + trashCmd + ` $targets
    end
end`
}

// powershellRecycleBody uses the Windows recycle-bin API via the
// VisualBasic FileIO assembly, so deletions are restorable from the bin.
func powershellRecycleBody() string {
	return `function rm {
    param([Parameter(ValueFromRemainingArguments = $true)][string[]]$Paths)
    Add-Type -AssemblyName Microsoft.VisualBasic
    foreach ($p in $Paths) {
        if ($p.StartsWith('-')) { continue }
        $item = Get-Item -LiteralPath $p -ErrorAction SilentlyContinue
        if ($null -eq $item) { continue }
        if ($item.PSIsContainer) {
            [Microsoft.VisualBasic.FileIO.FileSystem]::DeleteDirectory($item.FullName, 'OnlyErrorDialogs', 'SendToRecycleBin')
        } else {
            [Microsoft.VisualBasic.FileIO.FileSystem]::DeleteFile($item.FullName, 'OnlyErrorDialogs', 'SendToRecycleBin')
        }
    }
}`
}

func powershellTrashBody(trashCmd string) string {
	return `function rm {
    param([Parameter(ValueFromRemainingArguments = $true)][string[]]$Paths)
    $targets = @($Paths | Where-Object { -not $_.StartsWith('-') })
    if ($targets.Count -eq 0) {
        Microsoft.PowerShell.Management\Remove-Item @Paths
    } else {
        & ` + trashCmd + ` @targets
    }
}`
}
