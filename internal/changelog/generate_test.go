package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHistory implements HistoryProvider in memory. touched maps
// "fullHash:path" to true for path-filter tests.
type fakeHistory struct {
	commits []Commit
	tags    []string
	touched map[string]bool
}

func (f *fakeHistory) Commits() ([]Commit, error) { return f.commits, nil }

func (f *fakeHistory) TouchesPath(fullHash, path string) (bool, error) {
	return f.touched[fullHash+":"+path], nil
}

func (f *fakeHistory) Tags() ([]string, error) { return f.tags, nil }

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestGenerator(t *testing.T, history *fakeHistory, follow ...string) (*Generator, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "CHANGELOG.md")
	gen := NewGenerator(Config{
		Output: out,
		URL:    "https://github.com/org/repo",
		Follow: follow,
	}, history)
	gen.Now = fixedClock
	return gen, out
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGenerator_FirstRelease(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		commits: []Commit{
			{Summary: "feat: a", ShortHash: "abc123", FullHash: "abc123full", Author: "A"},
			{Summary: "fix: b", ShortHash: "def456", FullHash: "def456full", Author: "B"},
		},
	}
	gen, out := newTestGenerator(t, history)

	require.NoError(t, gen.Generate())

	content := readFile(t, out)
	assert.True(t, strings.HasPrefix(content, "# Changelog\n\n"))
	// First section in an untagged repository uses the seed directly.
	assert.Contains(t, content, "## All Changes@v0.1.0 — 2024-06-01")
	assert.Contains(t, content, "- feat: a by A in [#abc123](https://github.com/org/repo/commit/abc123full)")
	assert.Contains(t, content, "- fix: b by B in [#def456](https://github.com/org/repo/commit/def456full)")
}

func TestGenerator_SeedFromTags(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		commits: []Commit{
			{Summary: "fix: b", ShortHash: "def456", FullHash: "def456full", Author: "B"},
		},
		tags: []string{"v1.2.0", "nonsense", "v1.3.5"},
	}
	gen, out := newTestGenerator(t, history)

	require.NoError(t, gen.Generate())
	assert.Contains(t, readFile(t, out), "@v1.3.5 — 2024-06-01")
}

func TestGenerator_Idempotent(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		commits: []Commit{
			{Summary: "feat: a", ShortHash: "abc123", FullHash: "abc123full", Author: "A"},
			{Summary: "fix: b", ShortHash: "def456", FullHash: "def456full", Author: "B"},
		},
	}
	gen, out := newTestGenerator(t, history)

	require.NoError(t, gen.Generate())
	first := readFile(t, out)

	// Second run over the same history finds nothing new and must leave the
	// file byte for byte identical.
	require.NoError(t, gen.Generate())
	assert.Equal(t, first, readFile(t, out))
}

func TestGenerator_SecondRunAppendsOnlyNew(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		commits: []Commit{
			{Summary: "feat: a", ShortHash: "abc123", FullHash: "abc123full", Author: "A"},
		},
	}
	gen, out := newTestGenerator(t, history)
	require.NoError(t, gen.Generate())

	history.commits = append([]Commit{
		{Summary: "fix: c", ShortHash: "aaa111", FullHash: "aaa111full", Author: "C"},
	}, history.commits...)

	require.NoError(t, gen.Generate())
	content := readFile(t, out)

	// Fix on top of the recorded 0.1.0 bumps patch; the new section sits
	// above the old one and the old entry appears exactly once.
	newIdx := strings.Index(content, "@v0.1.1")
	oldIdx := strings.Index(content, "@v0.1.0")
	require.GreaterOrEqual(t, newIdx, 0)
	require.GreaterOrEqual(t, oldIdx, 0)
	assert.Less(t, newIdx, oldIdx)
	assert.Equal(t, 1, strings.Count(content, "feat: a by A"))
	assert.Equal(t, 1, strings.Count(content, "fix: c by C"))
}

func TestGenerator_BreakingBumpsMajor(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		commits: []Commit{
			{Summary: "fix: a", ShortHash: "abc123", FullHash: "abc123full", Author: "A"},
		},
	}
	gen, out := newTestGenerator(t, history)
	require.NoError(t, gen.Generate())

	history.commits = append([]Commit{
		{Summary: "feat!: incompatible", ShortHash: "bbb222", FullHash: "bbb222full", Author: "B"},
	}, history.commits...)

	require.NoError(t, gen.Generate())
	assert.Contains(t, readFile(t, out), "@v1.0.0 — 2024-06-01")
}

func TestGenerator_BackfillsLegacySections(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		commits: []Commit{
			{Summary: "fix: fresh", ShortHash: "abc123", FullHash: "abc123full", Author: "A"},
		},
	}
	gen, out := newTestGenerator(t, history)

	legacy := "# Changelog\n\n" +
		"## All Changes — 2023-11-02\n\n" +
		"### Fix\n\n" +
		"- fix: ancient by A in [#old111](https://github.com/org/repo/commit/old111full)\n\n"
	require.NoError(t, os.WriteFile(out, []byte(legacy), 0o644))

	require.NoError(t, gen.Generate())
	content := readFile(t, out)

	// Legacy section stamped with the seed, fresh section bumped past it.
	assert.Contains(t, content, "## All Changes@v0.1.0 — 2023-11-02")
	assert.Contains(t, content, "## All Changes@v0.1.1 — 2024-06-01")
	assert.NotContains(t, content, "## All Changes — 2023-11-02")
	assert.Equal(t, 1, strings.Count(content, "fix: ancient"))
}

func TestGenerator_FollowPaths(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		commits: []Commit{
			{Summary: "feat: core thing", ShortHash: "abc123", FullHash: "abc123full", Author: "A"},
			{Summary: "fix: doc typo", ShortHash: "def456", FullHash: "def456full", Author: "B"},
		},
		touched: map[string]bool{
			"abc123full:core": true,
			"def456full:docs": true,
		},
	}
	gen, out := newTestGenerator(t, history, "core", "docs")

	require.NoError(t, gen.Generate())
	content := readFile(t, out)

	assert.Contains(t, content, "## core@")
	assert.Contains(t, content, "## docs@")
	coreIdx := strings.Index(content, "## core@")
	docsIdx := strings.Index(content, "## docs@")
	assert.Less(t, coreIdx, docsIdx)
	assert.Equal(t, 1, strings.Count(content, "feat: core thing"))
	assert.Equal(t, 1, strings.Count(content, "fix: doc typo"))
}

func TestGenerator_UncategorizedCommitsSkipped(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		commits: []Commit{
			{Summary: "chore: bump deps", ShortHash: "abc123", FullHash: "abc123full", Author: "A"},
			{Summary: "merge branch main", ShortHash: "def456", FullHash: "def456full", Author: "B"},
		},
	}
	gen, out := newTestGenerator(t, history)

	require.NoError(t, gen.Generate())

	// Nothing categorizable: no new sections, only the header.
	assert.Equal(t, "# Changelog\n\n", readFile(t, out))
}

func TestGenerator_DocsOnlyKeepsVersion(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		commits: []Commit{
			{Summary: "fix: a", ShortHash: "abc123", FullHash: "abc123full", Author: "A"},
		},
	}
	gen, out := newTestGenerator(t, history)
	require.NoError(t, gen.Generate())

	history.commits = append([]Commit{
		{Summary: "docs: clarify usage", ShortHash: "ddd444", FullHash: "ddd444full", Author: "D"},
	}, history.commits...)

	require.NoError(t, gen.Generate())
	content := readFile(t, out)

	// A docs-only section repeats the current version rather than bumping.
	assert.Equal(t, 2, strings.Count(content, "@v0.1.0 — "))
	assert.Contains(t, content, "docs: clarify usage")
}
