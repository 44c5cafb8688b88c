package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Color functions auto-degrade to plain text when stderr is not a terminal.
var (
	errorLabel    = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMessage  = color.New(color.FgRed).SprintFunc()
	categoryLabel = color.New(color.FgYellow).SprintFunc()
	usageLabel    = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText     = color.New(color.FgCyan).SprintFunc()
	fixLabel      = color.New(color.FgGreen, color.Bold).SprintFunc()
	fixBullet     = color.New(color.FgGreen).SprintFunc()
)

func plain(args ...interface{}) string {
	return fmt.Sprint(args...)
}

// FormatError renders a CLIError with colors: the categorized message first,
// then optional usage, then remediation bullets.
func FormatError(err *CLIError) string {
	return formatError(err, true)
}

// FormatErrorPlain renders a CLIError without any color codes.
func FormatErrorPlain(err *CLIError) string {
	return formatError(err, false)
}

func formatError(err *CLIError, colors bool) string {
	if err == nil {
		return ""
	}

	label, msg := plain, plain
	category, uLabel, uText := plain, plain, plain
	fLabel, bullet := plain, plain
	if colors {
		label, msg = errorLabel, errorMessage
		category, uLabel, uText = categoryLabel, usageLabel, usageText
		fLabel, bullet = fixLabel, fixBullet
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]: %s\n", label("Error"), category(err.Category.String()), msg(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&b, "\n%s%s\n", uLabel("Usage: "), uText(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", fLabel("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&b, "  %s %s\n", bullet("•"), step)
		}
	}

	return b.String()
}

// PrintError prints a formatted CLIError to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}
