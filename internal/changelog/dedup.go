package changelog

// Flatten unions every formatted entry string across all historical sections
// and categories into one lookup set. Deduplication scope is deliberately
// global: an entry recorded once anywhere in history is suppressed
// everywhere in a new run, even under a different section name.
func Flatten(sections []Section) map[string]struct{} {
	seen := make(map[string]struct{})
	for _, s := range sections {
		for _, set := range s.Data.Entries {
			for entry := range set {
				seen[entry] = struct{}{}
			}
		}
	}
	return seen
}

// FilterNew keeps only entries absent from the historical set and recomputes
// the breaking flag strictly from the survivors. An entry filtered out as a
// duplicate cannot retroactively force a version bump.
func FilterNew(current SectionData, existing map[string]struct{}) SectionData {
	filtered := NewSectionData()
	for t, set := range current.Entries {
		for entry := range set {
			if _, dup := existing[entry]; dup {
				continue
			}
			filtered.Add(t, entry)
			if entryIsBreaking(entry) {
				filtered.Breaking = true
			}
		}
	}
	return filtered
}
