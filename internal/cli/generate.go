package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog/internal/changelog"
	"github.com/ariel-frischer/changelog/internal/config"
	clierrors "github.com/ariel-frischer/changelog/internal/errors"
	"github.com/ariel-frischer/changelog/internal/git"
	"github.com/ariel-frischer/changelog/internal/output"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate the changelog from commit history",
	Long: `Generate the changelog from the repository's commit history.

Runs one collect-parse-filter-render-write pass: commits reachable from
HEAD are classified by conventional-commit prefix, entries already present
in the existing changelog are dropped, surviving sections get a semantic
version, and the result is written with new sections at the top.

Exit codes:
  0 - Changelog written successfully
  1 - Generation failed
  2 - Repository or configuration unusable
  4 - Changelog file could not be read or written`,
	Example: `  changelog generate
  changelog generate --repo ../project
  changelog generate --url https://github.com/org/repo --output docs/CHANGELOG.md`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return err
	}
	return runGeneration(cmd, cfg)
}

// runGeneration performs a single generation pass. Shared with the watch
// command, which invokes it once per repository change.
func runGeneration(cmd *cobra.Command, cfg *config.Configuration) error {
	repo, err := git.Open(cfg.Repo)
	if err != nil {
		cliErr := clierrors.RepositoryNotFound(cfg.Repo, err)
		clierrors.PrintError(cliErr)
		return cliErr
	}

	url, err := repo.RemoteURL(cfg.URL)
	if err != nil {
		cliErr := clierrors.OriginNotFound(err)
		clierrors.PrintError(cliErr)
		return cliErr
	}

	gen := changelog.NewGenerator(changelog.Config{
		Output: cfg.Output,
		URL:    url,
		Follow: cfg.Follow,
	}, repo)

	// Spinner only on an interactive terminal, and never in verbose mode
	// where it would interleave with debug lines.
	var spin *spinner.Spinner
	if output.IsTerminal() && !cfg.Verbose {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = " generating changelog..."
		spin.Start()
	}

	err = gen.Generate()
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		cliErr := clierrors.OutputNotWritable(cfg.Output, err)
		if !isWriteError(err) {
			cliErr = clierrors.WrapWithMessage(err, clierrors.Runtime, "failed to generate changelog")
		}
		clierrors.PrintError(cliErr)
		return cliErr
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote changelog to %s", cfg.Output))
	return nil
}

// isWriteError distinguishes output-file failures from other pipeline
// failures so they map to the IO exit code.
func isWriteError(err error) bool {
	var pathErr *os.PathError
	if !errors.As(err, &pathErr) {
		return false
	}
	return pathErr.Op == "open" || pathErr.Op == "write"
}
