// Package output provides terminal output formatting for the changelog CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// verbose gates debug output. Toggled once at startup from the --verbose
// flag; atomic so tests exercising the generator in parallel stay clean.
var verbose atomic.Bool

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// Verbose reports whether debug output is enabled.
func Verbose() bool {
	return verbose.Load()
}

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsTerminal reports whether stdout is attached to a terminal. Progress
// decoration is suppressed when output is piped.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Debugf prints a dim diagnostic line to stderr when verbose mode is on.
func Debugf(format string, args ...any) {
	if !verbose.Load() {
		return
	}
	dim := color.New(color.Faint).SprintfFunc()
	fmt.Fprintln(os.Stderr, dim(format, args...))
}

// Infof prints an informational line to stderr.
func Infof(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// PrintSuccess prints a green checkmark success message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}
