// Package cli implements the changelog command tree. Commands load the
// layered configuration, apply flag overrides on top, and hand the result to
// the generator in internal/changelog.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog/internal/config"
	clierrors "github.com/ariel-frischer/changelog/internal/errors"
	"github.com/ariel-frischer/changelog/internal/git"
	"github.com/ariel-frischer/changelog/internal/output"
)

var (
	configFlag  string
	repoFlag    string
	outputFlag  string
	urlFlag     string
	followFlag  []string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Generate a versioned changelog from conventional commits",
	Long: `changelog derives a versioned, human-readable changelog from a git
repository's commit history and merges it with a previously generated
changelog file without duplicating entries.

Commit summaries are classified by their conventional-commit prefix
(feat, fix, docs, ...), grouped into categories, and stamped with a
semantic version computed from the kinds of changes present. Entries
already recorded anywhere in the existing file are filtered out, so the
command can run repeatedly against the same file.`,
	Example: `  # Generate CHANGELOG.md for the repository in the current directory
  changelog generate

  # Generate for another repository into a custom file
  changelog generate --repo ../project --output docs/CHANGELOG.md

  # One section per followed path
  changelog generate --follow src --follow docs

  # Regenerate whenever the repository's refs change
  changelog watch`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and returns any error for exit-code mapping
// in main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "Project config file (default .changelog.yml)")
	pf.StringVarP(&repoFlag, "repo", "r", "", `Path to git repository (default ".")`)
	pf.StringVarP(&outputFlag, "output", "o", "", "Output changelog file path (default CHANGELOG.md)")
	pf.StringVarP(&urlFlag, "url", "u", "", "Remote repository web URL (overrides the origin remote)")
	pf.StringArrayVarP(&followFlag, "follow", "f", nil, "Paths to filter commits by (repeatable, one section each)")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging")
}

// loadConfiguration loads the layered configuration and applies explicit
// flag overrides on top. Flags win over environment and files.
func loadConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		cliErr := clierrors.Wrap(err, clierrors.Configuration,
			"Check the syntax of .changelog.yml",
		)
		clierrors.PrintError(cliErr)
		return nil, cliErr
	}

	flags := cmd.Flags()
	if flags.Changed("repo") {
		cfg.Repo = repoFlag
	}
	if flags.Changed("output") {
		cfg.Output = outputFlag
	}
	if flags.Changed("url") {
		cfg.URL = urlFlag
	}
	if flags.Changed("follow") {
		cfg.Follow = followFlag
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verboseFlag
	}

	output.SetVerbose(cfg.Verbose)
	git.SetDebugLogger(output.Debugf)
	return cfg, nil
}
