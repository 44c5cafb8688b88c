package changelog

import (
	"fmt"
	"os"
	"time"

	"github.com/ariel-frischer/changelog/internal/output"
	"github.com/ariel-frischer/changelog/internal/semver"
)

const dateLayout = "2006-01-02"

// Config holds the inputs for one generation pass. URL must already be the
// canonical HTTPS web URL; resolution and SSH rewriting happen in
// internal/git before the generator runs.
type Config struct {
	// Output is the changelog file path, read once at the start and
	// rewritten once at the end.
	Output string
	// URL is the repository web URL embedded in entry hyperlinks.
	URL string
	// Follow optionally restricts commits to those touching the given
	// paths, producing one section per path. Empty means a single section
	// covering the whole repository.
	Follow []string
}

// Generator sequences the changelog pipeline: collect current entries, load
// and parse the existing file, detect the seed version, backfill legacy
// sections when needed, filter duplicates, assign versions, render, and
// write. Any step's failure is fatal and halts before the write.
type Generator struct {
	Config  Config
	History HistoryProvider

	// Now is the clock used for section dates. Overridable in tests.
	Now func() time.Time
}

// NewGenerator returns a Generator over the given history provider.
func NewGenerator(cfg Config, history HistoryProvider) *Generator {
	return &Generator{Config: cfg, History: history, Now: time.Now}
}

// Generate runs one collect-parse-filter-render-write pass.
//
// The output file is truncated and rewritten in place rather than written
// via an atomic rename, so a crash mid-write can leave a partial file. There
// is no concurrent writer to guard against; each invocation reads the file
// once at the start and writes it once at the end.
func (g *Generator) Generate() error {
	today := g.Now().UTC().Format(dateLayout)

	current, err := g.collect(today)
	if err != nil {
		return err
	}

	oldContent, err := LoadExisting(g.Config.Output)
	if err != nil {
		return err
	}
	parsed := ParseSections(oldContent)

	tags, err := g.History.Tags()
	if err != nil {
		return fmt.Errorf("listing tags: %w", err)
	}
	seed := semver.DetectSeed(tags)
	output.Debugf("seed version %s from %d tags", seed, len(tags))

	// Legacy files predate versioned headers. Per-section history cannot be
	// reconstructed from text alone, so every historical section uniformly
	// gets the seed and is re-rendered before merging.
	if NeedsBackfill(parsed) {
		for i := range parsed {
			v := seed
			parsed[i].Version = &v
		}
		oldContent = RenderSections(parsed)
		output.Debugf("backfilled %d legacy sections at %s", len(parsed), seed)
	}

	seen := Flatten(parsed)
	base := baseVersion(parsed, seed)
	firstRelease := len(parsed) == 0

	var fresh []Section
	for _, sec := range current {
		filtered := FilterNew(sec.Data, seen)
		if filtered.Empty() {
			continue
		}

		// The very first generated section uses the seed directly; every
		// later section bumps from the running base, keeping versions
		// monotonic across sections within one run and across runs.
		var v semver.Version
		if firstRelease {
			v = seed
			firstRelease = false
		} else {
			v = NextVersion(base, filtered.Present(), filtered.Breaking)
		}
		base = v

		sec.Data = filtered
		sec.Version = &v
		fresh = append(fresh, sec)
	}

	content := ComposeFile(RenderSections(fresh), oldContent)
	if err := os.WriteFile(g.Config.Output, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing changelog %s: %w", g.Config.Output, err)
	}

	output.Debugf("wrote %d new sections to %s", len(fresh), g.Config.Output)
	return nil
}

// collect classifies every reachable commit into per-path sections dated
// today. Uncategorized commits are silently skipped.
func (g *Generator) collect(today string) ([]Section, error) {
	commits, err := g.History.Commits()
	if err != nil {
		return nil, fmt.Errorf("traversing history: %w", err)
	}

	paths := g.Config.Follow
	if len(paths) == 0 {
		paths = []string{""}
	}

	sections := make([]Section, 0, len(paths))
	for _, path := range paths {
		data := NewSectionData()
		for _, c := range commits {
			if path != "" {
				touched, err := g.History.TouchesPath(c.FullHash, path)
				if err != nil {
					return nil, fmt.Errorf("diffing commit %s: %w", c.ShortHash, err)
				}
				if !touched {
					continue
				}
			}

			t, ok := Categorize(c.Summary)
			if !ok {
				continue
			}

			entry := c.FormatEntry(g.Config.URL)
			data.Add(t, entry)
			if IsBreaking(c.Summary) {
				data.Breaking = true
			}
			output.Debugf("%s -> %s", t, entry)
		}
		sections = append(sections, Section{Name: path, Date: today, Data: data})
	}

	return sections, nil
}

// baseVersion returns the highest version already recorded in history, or
// the seed when that is higher. Bumps always start from this running
// maximum so a new section never falls below a previously written one.
func baseVersion(parsed []Section, seed semver.Version) semver.Version {
	base := seed
	for _, s := range parsed {
		if s.Version != nil && base.Less(*s.Version) {
			base = *s.Version
		}
	}
	return base
}
