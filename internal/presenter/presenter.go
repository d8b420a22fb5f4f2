// Package presenter provides consistent user-facing CLI output: success,
// warning, error and informational messages with color support and a
// quiet mode. Structured diagnostics go through internal/logger instead.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Presenter writes user-facing messages.
type Presenter struct {
	out    io.Writer
	errOut io.Writer
	quiet  bool
}

// New creates a Presenter writing to stdout/stderr, honoring NO_COLOR.
func New() *Presenter {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
	return &Presenter{out: os.Stdout, errOut: os.Stderr}
}

// NewWithWriters creates a Presenter with custom writers, for tests.
func NewWithWriters(out, errOut io.Writer) *Presenter {
	return &Presenter{out: out, errOut: errOut}
}

// SetQuiet suppresses everything except errors.
func (p *Presenter) SetQuiet(quiet bool) { p.quiet = quiet }

// Success prints a green checkmarked message.
func (p *Presenter) Success(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", color.GreenString("✓"), message)
}

// Info prints a plain informational message.
func (p *Presenter) Info(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.out, message)
}

// Warning prints a yellow warning to stderr.
func (p *Presenter) Warning(message string) {
	fmt.Fprintf(p.errOut, "%s %s\n", color.YellowString("warning:"), message)
}

// Error prints a red error with optional context to stderr.
func (p *Presenter) Error(err error, context string) {
	if err == nil {
		return
	}
	if context != "" {
		fmt.Fprintf(p.errOut, "%s %s: %v\n", color.RedString("error:"), context, err)
		return
	}
	fmt.Fprintf(p.errOut, "%s %v\n", color.RedString("error:"), err)
}

// Section prints a bold section header.
func (p *Presenter) Section(title string) {
	if p.quiet {
		return
	}
	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(p.out, "%s\n", title)
	fmt.Fprintln(p.out, strings.Repeat("-", len(title)))
}

// Default is the package-level presenter used by the CLI commands.
var Default = New()

// Success prints via the default presenter.
func Success(message string) { Default.Success(message) }

// Info prints via the default presenter.
func Info(message string) { Default.Info(message) }

// Warning prints via the default presenter.
func Warning(message string) { Default.Warning(message) }

// Error prints via the default presenter.
func Error(err error, context string) { Default.Error(err, context) }

// Section prints via the default presenter.
func Section(title string) { Default.Section(title) }

// SetQuiet toggles quiet mode on the default presenter.
func SetQuiet(quiet bool) { Default.SetQuiet(quiet) }
