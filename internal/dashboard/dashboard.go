package dashboard

import (
	"errors"
	"fmt"
	"math"

	"github.com/roach88/jobdash/internal/aggregate"
	"github.com/roach88/jobdash/internal/listing"
	"github.com/roach88/jobdash/internal/outlier"
	"github.com/roach88/jobdash/internal/pipeline"
	"github.com/roach88/jobdash/internal/skills"
	"github.com/roach88/jobdash/internal/taxonomy"
)

// ErrNoSkills is returned by TopSkills for a label without a skills table.
var ErrNoSkills = errors.New("no skills table for category")

// Default panel sizes.
const (
	DefaultTopTitles    = 10
	DefaultTopPlatforms = 6
	DefaultBinWidth     = 10000
)

// Settings sizes the panels.
type Settings struct {
	TopTitles    int     // titles shown for a selected category
	TopPlatforms int     // platforms shown in the share chart
	BinWidth     float64 // salary histogram bin width
}

func (s Settings) withDefaults() Settings {
	if s.TopTitles <= 0 {
		s.TopTitles = DefaultTopTitles
	}
	if s.TopPlatforms <= 0 {
		s.TopPlatforms = DefaultTopPlatforms
	}
	if s.BinWidth <= 0 {
		s.BinWidth = DefaultBinWidth
	}
	return s
}

// Dashboard serves queries over one snapshot.
type Dashboard struct {
	snap     *pipeline.Snapshot
	catalog  *skills.Catalog
	settings Settings
}

// New returns a Dashboard over snap. catalog may be nil when no skills
// tables are configured.
func New(snap *pipeline.Snapshot, catalog *skills.Catalog, settings Settings) *Dashboard {
	return &Dashboard{snap: snap, catalog: catalog, settings: settings.withDefaults()}
}

// Snapshot returns the underlying snapshot.
func (d *Dashboard) Snapshot() *pipeline.Snapshot {
	return d.snap
}

// Filter selects listings. Empty fields match everything.
type Filter struct {
	Category taxonomy.Label `json:"category,omitempty"` // level or domain label
	Location string         `json:"location,omitempty"` // exact location text
}

// Match reports whether r passes f. Category taxonomy.Unmatched selects
// records neither taxonomy classified.
func (f Filter) Match(r listing.Record) bool {
	if f.Location != "" && r.LocationText != f.Location {
		return false
	}
	switch f.Category {
	case "":
		return true
	case taxonomy.Unmatched:
		return r.Level == "" && r.Domain == ""
	default:
		return r.InCategory(f.Category)
	}
}

// CategoryDistribution counts listings per category of field. With a
// selected category it instead counts the most common titles within it,
// folding the tail into listing.Others.
func (d *Dashboard) CategoryDistribution(field listing.Field, selected taxonomy.Label) (listing.Series, error) {
	if err := categoryField(field); err != nil {
		return nil, err
	}
	if selected == "" {
		return aggregate.Count(d.snap.All, field, 0)
	}

	var in []listing.Record
	for _, r := range d.snap.All {
		label, err := field.Value(r)
		if err != nil {
			return nil, err
		}
		if label == string(selected) {
			in = append(in, r)
		}
	}
	return aggregate.Count(in, listing.FieldTitle, d.settings.TopTitles)
}

// PlatformShare counts listings per platform, top platforms only.
func (d *Dashboard) PlatformShare() listing.Series {
	// FieldPlatform is always valid.
	s, _ := aggregate.Count(d.snap.All, listing.FieldPlatform, d.settings.TopPlatforms)
	return s
}

// SalaryBands counts annual listings per salary band, every band present.
func (d *Dashboard) SalaryBands() listing.Series {
	return aggregate.BandDistribution(d.snap.All)
}

// SalaryHistogram bins trimmed salaries per category of field.
func (d *Dashboard) SalaryHistogram(field listing.Field) ([]listing.Histogram, error) {
	if err := categoryField(field); err != nil {
		return nil, err
	}
	return aggregate.Histogram(d.snap.Processed, field, d.settings.BinWidth)
}

// SalaryByCategory is the mean trimmed salary per category of field.
func (d *Dashboard) SalaryByCategory(field listing.Field) (listing.Series, error) {
	if err := categoryField(field); err != nil {
		return nil, err
	}
	return aggregate.Mean(d.snap.Processed, field, aggregate.AvgSalary, 0)
}

// BandSalaryByCategory is the mean band-path salary per category of field
// over every annual listing. No outlier trim applies, matching SalaryBands.
func (d *Dashboard) BandSalaryByCategory(field listing.Field) (listing.Series, error) {
	if err := categoryField(field); err != nil {
		return nil, err
	}
	return aggregate.Mean(d.snap.All, field, aggregate.BandAvg, 0)
}

// States counts listings per US state code.
func (d *Dashboard) States() listing.Series {
	return aggregate.Geo(d.snap.All)
}

// Listings returns the records matching f in input order.
func (d *Dashboard) Listings(f Filter) []listing.Record {
	out := make([]listing.Record, 0)
	for _, r := range d.snap.All {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Total returns how many records match f.
func (d *Dashboard) Total(f Filter) int {
	n := 0
	for _, r := range d.snap.All {
		if f.Match(r) {
			n++
		}
	}
	return n
}

// Locations returns the distinct location texts in first-encounter order.
func (d *Dashboard) Locations() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range d.snap.All {
		if r.LocationText == "" || seen[r.LocationText] {
			continue
		}
		seen[r.LocationText] = true
		out = append(out, r.LocationText)
	}
	return out
}

// TopSkills returns the skills tables for an exact category label.
func (d *Dashboard) TopSkills(category taxonomy.Label) ([]skills.Table, error) {
	tables, ok := d.catalog.Lookup(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSkills, category)
	}
	return tables, nil
}

// Summary describes the snapshot.
type Summary struct {
	ID        string          `json:"id"`
	Digest    string          `json:"digest"`
	Records   int             `json:"records"`
	Salaried  int             `json:"salaried"`
	Processed int             `json:"processed"`
	Trimmed   int             `json:"trimmed"`
	Bounds    *outlier.Bounds `json:"bounds,omitempty"` // nil when no salary parsed
}

// Summary returns counts and fences for the snapshot.
func (d *Dashboard) Summary() Summary {
	s := Summary{
		ID:        d.snap.ID.String(),
		Digest:    d.snap.Digest,
		Records:   d.snap.Len(),
		Salaried:  len(outlier.Column(d.snap.All)),
		Processed: len(d.snap.Processed),
		Trimmed:   d.snap.Trimmed(),
	}
	if b := d.snap.Bounds; !math.IsNaN(b.Q1) {
		s.Bounds = &b
	}
	return s
}

func categoryField(f listing.Field) error {
	switch f {
	case listing.FieldLevel, listing.FieldDomain, listing.FieldCategory:
		return nil
	default:
		return fmt.Errorf("%w: %q is not a category field", listing.ErrUnknownField, f)
	}
}
