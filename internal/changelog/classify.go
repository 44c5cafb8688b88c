package changelog

import "strings"

// Categorize maps a commit summary to its change category by examining the
// conventional-commit prefix before the first colon. Summaries without a
// colon, and prefixes not in the fixed table, are uncategorized: they never
// appear in output, not even under a catch-all bucket.
//
// A parenthesized scope ("fix(core)") and a trailing breaking marker
// ("feat!") are stripped before lookup.
func Categorize(summary string) (CommitType, bool) {
	idx := strings.IndexByte(summary, ':')
	if idx < 0 {
		return 0, false
	}

	prefix := strings.ToLower(summary[:idx])
	if paren := strings.IndexByte(prefix, '('); paren >= 0 {
		prefix = prefix[:paren]
	}
	prefix = strings.TrimSuffix(prefix, "!")

	t, ok := prefixToType[prefix]
	return t, ok
}

// IsBreaking reports whether the summary carries the conventional-commit
// breaking marker: a '!' immediately before the first colon. Only the first
// colon is examined; colons elsewhere in the summary are irrelevant.
func IsBreaking(summary string) bool {
	idx := strings.IndexByte(summary, ':')
	return idx > 0 && summary[idx-1] == '!'
}

// entryIsBreaking re-derives the breaking flag from a formatted entry
// string. Raw summaries are not stored verbatim in the changelog file, so
// the persisted-text heuristic looks for the literal "!:" marker.
func entryIsBreaking(entry string) bool {
	return strings.Contains(entry, "!:")
}
