// Package semver implements the semantic-version arithmetic the changelog
// generator needs: parsing vX.Y.Z tags, ordering them, and detecting the
// seed version from a repository's tag history.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	xsemver "golang.org/x/mod/semver"
)

// Version is a semantic version without pre-release or build metadata.
type Version struct {
	Major int
	Minor int
	Patch int
}

// DefaultSeed is the version floor used when no historical tag parses.
var DefaultSeed = Version{Major: 0, Minor: 1, Patch: 0}

// String renders the canonical "vX.Y.Z" form.
func (v Version) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare orders versions by (major, minor, patch). Returns -1, 0, or 1.
func (v Version) Compare(o Version) int {
	if v.Major != o.Major {
		return cmp(v.Major, o.Major)
	}
	if v.Minor != o.Minor {
		return cmp(v.Minor, o.Minor)
	}
	return cmp(v.Patch, o.Patch)
}

// Less reports whether v orders strictly before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Parse accepts "MAJOR.MINOR.PATCH" with an optional leading "v".
// Pre-release suffixes, build metadata, and partial versions are rejected.
func Parse(s string) (Version, error) {
	raw := strings.TrimPrefix(s, "v")
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version string %q", s)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := parseComponent(part)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version string %q: %w", s, err)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// parseComponent parses a single non-negative numeric version component.
// strconv.Atoi alone would accept signs, so digits are checked explicitly.
func parseComponent(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty component")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric component %q", s)
		}
	}
	return strconv.Atoi(s)
}

// DetectSeed returns the highest parseable semantic version among the given
// tags, or DefaultSeed when none parse. Unparsable tags are skipped, not
// reported: tag lists routinely contain names that are not versions at all.
func DetectSeed(tags []string) Version {
	best := ""
	for _, tag := range tags {
		if _, err := Parse(tag); err != nil {
			continue
		}
		canonical := tag
		if !strings.HasPrefix(canonical, "v") {
			canonical = "v" + canonical
		}
		if best == "" || xsemver.Compare(canonical, best) > 0 {
			best = canonical
		}
	}

	if best == "" {
		return DefaultSeed
	}
	v, err := Parse(best)
	if err != nil {
		return DefaultSeed
	}
	return v
}
