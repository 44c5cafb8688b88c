package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		summary  string
		expected CommitType
		ok       bool
	}{
		"plain feat":                  {"feat: add widget", TypeFeat, true},
		"plain fix":                   {"fix: crash on empty input", TypeFix, true},
		"scoped fix":                  {"fix(core): crash on empty input", TypeFix, true},
		"scoped breaking fix":         {"fix(core)!: drop old field", TypeFix, true},
		"breaking feat":               {"feat!: new config format", TypeFeat, true},
		"uppercase prefix":            {"FEAT: add widget", TypeFeat, true},
		"docs":                        {"docs: update readme", TypeDocs, true},
		"test":                        {"test: cover parser", TypeTest, true},
		"perf":                        {"perf: avoid rescan", TypePerf, true},
		"refactor":                    {"refactor: split module", TypeRefactor, true},
		"add":                         {"add: new endpoint", TypeAdd, true},
		"deprecated":                  {"deprecated: old flag", TypeDeprecated, true},
		"no colon":                    {"fix crash on empty input", 0, false},
		"unknown prefix":              {"chore: bump deps", 0, false},
		"unknown prefix not bucketed": {"wip: half done", 0, false},
		"empty summary":               {"", 0, false},
		"colon only":                  {":", 0, false},
		"second colon irrelevant":     {"fix: handle a:b paths", TypeFix, true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := Categorize(tt.summary)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestIsBreaking(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		summary  string
		expected bool
	}{
		"breaking feat":          {"feat!: new format", true},
		"breaking scoped fix":    {"fix(core)!: drop field", true},
		"plain fix":              {"fix: crash", false},
		"no colon":               {"feat! something", false},
		"colon at position zero": {":!", false},
		"bang after colon":       {"fix: really!: yes", false},
		"bang elsewhere":         {"feat!: wow!", true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, IsBreaking(tt.summary))
		})
	}
}

func TestTypeByName(t *testing.T) {
	t.Parallel()

	for _, typ := range commitTypes {
		got, ok := TypeByName(typ.String())
		require.True(t, ok)
		assert.Equal(t, typ, got)
	}

	// Case-insensitive match
	got, ok := TypeByName("fEAt")
	require.True(t, ok)
	assert.Equal(t, TypeFeat, got)

	_, ok = TypeByName("Chore")
	assert.False(t, ok)
}

func TestCommit_FormatEntry(t *testing.T) {
	t.Parallel()

	c := Commit{
		Summary:   "feat: add widget",
		ShortHash: "abc1234",
		FullHash:  "abc1234def5678",
		Author:    "Jordan Doe",
	}

	got := c.FormatEntry("https://github.com/org/repo")
	assert.Equal(t,
		"feat: add widget by Jordan Doe in [#abc1234](https://github.com/org/repo/commit/abc1234def5678)",
		got)
}
