package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# Changelog Configuration

repo: "."                  # Path to the git repository
output: CHANGELOG.md       # Changelog file path
url: ""                    # Remote web URL override (empty = resolve origin)
follow: []                 # Paths to filter commits by, one section each
verbose: false             # Enable debug logging
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"repo":    ".",
		"output":  "CHANGELOG.md",
		"url":     "",
		"follow":  []string{},
		"verbose": false,
	}
}
