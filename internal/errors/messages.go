package errors

import "fmt"

// Common error messages for the changelog CLI.
// These templates ensure consistent, actionable error messages.

// RepositoryNotFound creates an error for an unopenable repository path.
func RepositoryNotFound(path string, cause error) *CLIError {
	return NewConfigError(
		fmt.Sprintf("failed to open repository at %s: %v", path, cause),
		"Check that the path points at a git repository",
		"Pass the repository explicitly with --repo <path>",
	)
}

// OriginNotFound creates an error for a repository without a usable origin remote.
func OriginNotFound(cause error) *CLIError {
	return NewConfigError(
		fmt.Sprintf("could not resolve origin remote: %v", cause),
		"Add an origin remote: git remote add origin <url>",
		"Or supply the web URL explicitly with --url <url>",
	)
}

// OutputNotWritable creates an error for an unwritable changelog file.
func OutputNotWritable(path string, cause error) *CLIError {
	return NewIOError(
		fmt.Sprintf("cannot write changelog to %s: %v", path, cause),
		"Check permissions on the output directory",
		"Choose another location with --output <path>",
	)
}
