package changelog

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ariel-frischer/changelog/internal/semver"
)

// Line grammar over the persisted file. Each line is tried against the three
// patterns in order, first match wins; lines matching none are ignored.
// Parsing is permissive and best-effort by contract: a hand-edited or
// partially corrupted file never produces an error, only fewer sections.
var (
	// ## Section — 2024-01-15  (accepts "--" as a plain-ASCII dash form)
	sectionRe = regexp.MustCompile(`^## (.+?)\s+(?:--|—)\s+(\d{4}-\d{2}-\d{2})\s*$`)
	// ### Category
	categoryRe = regexp.MustCompile(`^### (\w+)\s*$`)
	// - entry text
	entryRe = regexp.MustCompile(`^- (.+)$`)
)

// LoadExisting reads the changelog file, dropping the leading "# Changelog"
// header so the remainder can be parsed and carried through verbatim.
// A missing file is an empty history, not an error.
func LoadExisting(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading changelog %s: %w", path, err)
	}

	content := string(data)
	if strings.HasPrefix(content, "# Changelog") {
		if nl := strings.IndexByte(content, '\n'); nl >= 0 {
			content = content[nl+1:]
		} else {
			content = ""
		}
	}
	return strings.TrimLeft(content, "\n"), nil
}

// ParseSections reconstructs structured sections from previously rendered
// changelog text.
//
// A section header starts a new section and resets the category cursor. A
// category header sets the cursor when its name matches a known display name
// (case-insensitively) and clears it otherwise, discarding subsequent entry
// lines until the next valid header. Entry lines are captured only when both
// a section and a category are current.
func ParseSections(content string) []Section {
	var sections []Section
	var curType CommitType
	haveType := false

	for _, line := range strings.Split(content, "\n") {
		if m := sectionRe.FindStringSubmatch(line); m != nil {
			name, version := splitVersionedName(m[1])
			sections = append(sections, Section{
				Name:    name,
				Version: version,
				Date:    m[2],
				Data:    NewSectionData(),
			})
			haveType = false
			continue
		}

		if m := categoryRe.FindStringSubmatch(line); m != nil {
			curType, haveType = TypeByName(m[1])
			continue
		}

		if m := entryRe.FindStringSubmatch(line); m != nil && len(sections) > 0 && haveType {
			cur := &sections[len(sections)-1]
			cur.Data.Add(curType, m[1])
			if entryIsBreaking(m[1]) {
				cur.Data.Breaking = true
			}
		}
	}

	return sections
}

// splitVersionedName splits "name@v1.2.3" into the bare name and its
// version. Names without a parseable version suffix come back whole with a
// nil version; these mark legacy-format sections eligible for backfill.
func splitVersionedName(name string) (string, *semver.Version) {
	at := strings.LastIndexByte(name, '@')
	if at < 0 {
		return name, nil
	}
	v, err := semver.Parse(name[at+1:])
	if err != nil {
		return name, nil
	}
	return name[:at], &v
}

// NeedsBackfill reports whether historical sections exist but the most
// recent one lacks a version suffix, meaning the file predates versioned
// headers and every historical section should be stamped with the seed.
func NeedsBackfill(sections []Section) bool {
	return len(sections) > 0 && sections[0].Version == nil
}
