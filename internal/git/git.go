// Package git backs the changelog generator's history traversal, path-touch
// detection, tag listing, and remote resolution with the go-git library, so
// no git installation is required. Repository handles live only for the
// duration of a single operation; iterators are closed on every path.
package git

import (
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ariel-frischer/changelog/internal/changelog"
)

// shortHashLen matches the abbreviated hash length used in entry links.
const shortHashLen = 7

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default, it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repository wraps an opened git repository and implements
// changelog.HistoryProvider.
type Repository struct {
	repo *gogit.Repository
	path string
}

// Open opens the repository at the given path, traversing up the directory
// tree to find the repository root.
func Open(path string) (*Repository, error) {
	if path == "" {
		path = "."
	}

	logDebug("[git] opening repository at %s", path)
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Path returns the path the repository was opened with.
func (r *Repository) Path() string {
	return r.path
}

// Commits returns commits reachable from HEAD in newest-first committer-time
// order, reduced to the fields the generator consumes.
func (r *Repository) Commits() ([]changelog.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	iter, err := r.repo.Log(&gogit.LogOptions{
		From:  head.Hash(),
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}
	defer iter.Close()

	var commits []changelog.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		full := c.Hash.String()
		commits = append(commits, changelog.Commit{
			Summary:   summaryLine(c.Message),
			ShortHash: full[:shortHashLen],
			FullHash:  full,
			Author:    c.Author.Name,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commits: %w", err)
	}

	logDebug("[git] Commits: walked %d commits from HEAD", len(commits))
	return commits, nil
}

// TouchesPath reports whether the commit changed the given path relative to
// its first parent. A root commit is diffed against the empty tree, so it
// touches every path present in its own tree.
func (r *Repository) TouchesPath(fullHash, path string) (bool, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(fullHash))
	if err != nil {
		return false, fmt.Errorf("looking up commit %s: %w", fullHash, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return false, fmt.Errorf("getting tree for %s: %w", fullHash, err)
	}

	var parentTree *object.Tree
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return false, fmt.Errorf("getting parent of %s: %w", fullHash, err)
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return false, fmt.Errorf("getting parent tree of %s: %w", fullHash, err)
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return false, fmt.Errorf("diffing trees for %s: %w", fullHash, err)
	}

	for _, change := range changes {
		if matchesPath(change.From.Name, path) || matchesPath(change.To.Name, path) {
			return true, nil
		}
	}
	return false, nil
}

// matchesPath reports whether a changed file falls under the followed path,
// either as the exact file or inside it as a directory.
func matchesPath(name, path string) bool {
	if name == "" {
		return false
	}
	return name == path || strings.HasPrefix(name, path+"/")
}

// Tags returns the short names of all tag references. Lightweight and
// annotated tags are treated alike; only the name matters for seed
// detection.
func (r *Repository) Tags() ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	logDebug("[git] Tags: found %d tags", len(tags))
	return tags, nil
}

// summaryLine extracts the first line of a commit message.
func summaryLine(message string) string {
	if nl := strings.IndexByte(message, '\n'); nl >= 0 {
		message = message[:nl]
	}
	return strings.TrimRight(message, "\r \t")
}
