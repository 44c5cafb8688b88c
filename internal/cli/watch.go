package cli

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/changelog/internal/errors"
	"github.com/ariel-frischer/changelog/internal/output"
)

// watchDebounce coalesces bursts of ref updates (a fetch or rebase touches
// several files) into a single regeneration.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the changelog whenever repository refs change",
	Long: `Watch the repository and regenerate the changelog whenever its
references change (new commits, branch switches, fetches).

An initial generation pass runs immediately; afterwards each change
triggers exactly the same single synchronous pass the generate command
performs. Press Ctrl+C to exit.`,
	Example: `  changelog watch
  changelog watch --repo ../project --output docs/CHANGELOG.md`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial pass fails hard; a watch session over a broken setup is useless.
	if err := runGeneration(cmd, cfg); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		cliErr := clierrors.WrapWithMessage(err, clierrors.Runtime, "starting file watcher")
		clierrors.PrintError(cliErr)
		return cliErr
	}
	defer watcher.Close()

	gitDir := filepath.Join(cfg.Repo, ".git")
	if err := watcher.Add(gitDir); err != nil {
		cliErr := clierrors.WrapWithMessage(err, clierrors.Runtime, "watching "+gitDir)
		clierrors.PrintError(cliErr)
		return cliErr
	}
	// Branch tips live one level down; missing refs/heads is fine on
	// fully packed repositories.
	if err := watcher.Add(filepath.Join(gitDir, "refs", "heads")); err != nil {
		output.Debugf("[watch] refs/heads not watchable: %v", err)
	}

	output.Infof("Watching %s for changes (Ctrl+C to exit)", gitDir)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRefEvent(event) {
				continue
			}
			output.Debugf("[watch] %s %s", event.Op, event.Name)
			debounce.Reset(watchDebounce)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			output.Infof("watch error: %v", err)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			// Keep watching even when a pass fails; the next change may
			// succeed (e.g. a mid-rebase state resolving itself).
			if err := runGeneration(cmd, cfg); err != nil {
				output.Infof("regeneration failed, still watching")
			}
		}
	}
}

// isRefEvent filters watcher noise down to reference updates: HEAD,
// packed-refs, or anything under refs/.
func isRefEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if base == "HEAD" || base == "packed-refs" {
		return true
	}
	return strings.Contains(event.Name, string(filepath.Separator)+"refs"+string(filepath.Separator))
}
