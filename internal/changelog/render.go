package changelog

import (
	"fmt"
	"strings"
)

// FileHeader is the literal header written exactly once per file.
const FileHeader = "# Changelog"

// DefaultSectionName is the display name for the unfiltered section, whose
// internal name is the empty string.
const DefaultSectionName = "All Changes"

// RenderSections serializes sections to markdown in the caller-supplied
// order. Within a section, categories render in declaration order, skipping
// empty ones; within a category, entries render in ascending lexicographic
// order. The file header is not included; the generator writes it once when
// composing the final file.
func RenderSections(sections []Section) string {
	var b strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&b, "## %s — %s\n\n", headerName(s), s.Date)

		for _, t := range commitTypes {
			entries := s.Data.Sorted(t)
			if len(entries) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s\n\n", t)
			for _, entry := range entries {
				fmt.Fprintf(&b, "- %s\n", entry)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// headerName builds the section header name, substituting the default name
// for the empty section and appending the version when one is assigned.
func headerName(s Section) string {
	name := s.Name
	if name == "" {
		name = DefaultSectionName
	}
	if s.Version != nil {
		name += "@" + s.Version.String()
	}
	return name
}

// ComposeFile assembles the final file content: the header exactly once,
// newly rendered sections first, then previously existing content, yielding
// reverse-chronological order with the newest section at the top.
func ComposeFile(newContent, oldContent string) string {
	var b strings.Builder
	b.WriteString(FileHeader)
	b.WriteString("\n\n")
	b.WriteString(newContent)
	b.WriteString(oldContent)
	return b.String()
}
