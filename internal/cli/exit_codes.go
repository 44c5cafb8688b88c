package cli

import (
	"fmt"

	clierrors "github.com/ariel-frischer/changelog/internal/errors"
)

// Exit codes for the changelog CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a generation failure
	ExitFailure = 1

	// ExitConfigError indicates an unusable repository or configuration
	ExitConfigError = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitIOError indicates the changelog file could not be read or written
	ExitIOError = 4
)

// ExitError carries an explicit exit code through cobra's error return.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an error that maps to the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitConfigError
		case clierrors.IO:
			return ExitIOError
		default:
			return ExitFailure
		}
	}
	return ExitFailure
}
