package changelog

import "github.com/ariel-frischer/changelog/internal/semver"

// NextVersion computes the version for a new section from the categories
// present among its surviving entries. Precedence is first-match-wins and
// rules never combine:
//
//  1. any breaking change bumps major and resets minor and patch
//  2. feat or add bumps minor and resets patch
//  3. fix, perf, or refactor bumps patch
//  4. docs, test, and deprecated alone leave the version unchanged
func NextVersion(base semver.Version, present map[CommitType]bool, breaking bool) semver.Version {
	switch {
	case breaking:
		return semver.Version{Major: base.Major + 1}
	case present[TypeFeat] || present[TypeAdd]:
		return semver.Version{Major: base.Major, Minor: base.Minor + 1}
	case present[TypeFix] || present[TypePerf] || present[TypeRefactor]:
		return semver.Version{Major: base.Major, Minor: base.Minor, Patch: base.Patch + 1}
	default:
		return base
	}
}
