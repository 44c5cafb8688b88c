package changelog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ariel-frischer/changelog/internal/semver"
)

// CommitType identifies the change category of a conventional commit.
// Declaration order is significant: it drives both prefix lookup and the
// order categories render within a section.
type CommitType int

const (
	TypeAdd CommitType = iota
	TypeFeat
	TypeRefactor
	TypeDeprecated
	TypeFix
	TypeDocs
	TypeTest
	TypePerf
)

// commitTypes lists every category in declaration order.
var commitTypes = []CommitType{
	TypeAdd, TypeFeat, TypeRefactor, TypeDeprecated,
	TypeFix, TypeDocs, TypeTest, TypePerf,
}

// typeNames maps each category to its capitalized display name.
// Initialized once, never mutated.
var typeNames = map[CommitType]string{
	TypeAdd:        "Add",
	TypeFeat:       "Feat",
	TypeRefactor:   "Refactor",
	TypeDeprecated: "Deprecated",
	TypeFix:        "Fix",
	TypeDocs:       "Docs",
	TypeTest:       "Test",
	TypePerf:       "Perf",
}

// prefixToType maps lowercase conventional-commit prefixes to categories.
var prefixToType = map[string]CommitType{
	"add":        TypeAdd,
	"feat":       TypeFeat,
	"refactor":   TypeRefactor,
	"deprecated": TypeDeprecated,
	"fix":        TypeFix,
	"docs":       TypeDocs,
	"test":       TypeTest,
	"perf":       TypePerf,
}

// String returns the display name used in rendered category headers.
func (t CommitType) String() string {
	return typeNames[t]
}

// TypeByName resolves a display name case-insensitively. Unknown names
// return ok=false; the parser uses this to discard entries under headers
// it does not recognize.
func TypeByName(name string) (CommitType, bool) {
	for _, t := range commitTypes {
		if strings.EqualFold(typeNames[t], name) {
			return t, true
		}
	}
	return 0, false
}

// Commit is one history entry as exposed by the history provider.
type Commit struct {
	Summary   string
	ShortHash string
	FullHash  string
	Author    string
}

// FormatEntry renders a commit into its display string. The rendered string,
// not the underlying hash, is the entry's identity everywhere downstream:
// deduplication against previously written files compares these strings
// byte for byte.
func (c Commit) FormatEntry(repoURL string) string {
	return fmt.Sprintf("%s by %s in [#%s](%s/commit/%s)",
		c.Summary, c.Author, c.ShortHash, repoURL, c.FullHash)
}

// HistoryProvider exposes the commit history the generator walks.
// internal/git backs the real implementation with go-git.
type HistoryProvider interface {
	// Commits returns commits reachable from HEAD, newest first.
	Commits() ([]Commit, error)
	// TouchesPath reports whether the commit changed the given path
	// relative to its first parent. A root commit is compared against the
	// empty tree, so it touches every path it contains.
	TouchesPath(fullHash, path string) (bool, error)
	// Tags returns the short names of all tag references.
	Tags() ([]string, error)
}

// entrySet is a set of formatted entry strings. Duplicates within a category
// collapse naturally; ordering is applied at render time.
type entrySet map[string]struct{}

// SectionData holds the formatted entries of one section grouped by
// category, plus a breaking-change flag scoped to those entries.
type SectionData struct {
	Entries  map[CommitType]entrySet
	Breaking bool
}

// NewSectionData returns an empty SectionData ready for Add calls.
func NewSectionData() SectionData {
	return SectionData{Entries: make(map[CommitType]entrySet)}
}

// Add records a formatted entry under the given category.
func (d SectionData) Add(t CommitType, entry string) {
	set, ok := d.Entries[t]
	if !ok {
		set = make(entrySet)
		d.Entries[t] = set
	}
	set[entry] = struct{}{}
}

// Empty reports whether no category holds any entry.
func (d SectionData) Empty() bool {
	for _, set := range d.Entries {
		if len(set) > 0 {
			return false
		}
	}
	return true
}

// Sorted returns the category's entries in ascending lexicographic order.
func (d SectionData) Sorted(t CommitType) []string {
	set := d.Entries[t]
	if len(set) == 0 {
		return nil
	}
	entries := make([]string, 0, len(set))
	for e := range set {
		entries = append(entries, e)
	}
	sort.Strings(entries)
	return entries
}

// Present returns the set of categories holding at least one entry.
func (d SectionData) Present() map[CommitType]bool {
	present := make(map[CommitType]bool, len(d.Entries))
	for t, set := range d.Entries {
		if len(set) > 0 {
			present[t] = true
		}
	}
	return present
}

// Section is a named, dated, optionally versioned group of categorized
// entries. It serves both as the parse product of an existing file and as
// the render input for newly collected changes; legacy files yield sections
// with a nil Version.
type Section struct {
	Name    string
	Version *semver.Version
	Date    string
	Data    SectionData
}
