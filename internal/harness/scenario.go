package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/jobdash/internal/dashboard"
	"github.com/roach88/jobdash/internal/listing"
)

// Scenario is one query scenario file.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Source is a listings source spec. Relative file paths resolve against
	// the scenario file's directory.
	Source string `yaml:"source,omitempty"`

	// Records are inline rows, used when Source is empty.
	Records []Row `yaml:"records,omitempty"`

	// Taxonomy is an optional taxonomy file; empty uses the built-in tables.
	Taxonomy string `yaml:"taxonomy,omitempty"`

	// Settings sizes the dashboard panels. Zero values take defaults.
	Settings Settings `yaml:"settings,omitempty"`

	// Queries run in order against one snapshot.
	Queries []QueryStep `yaml:"queries"`
}

// Row is an inline listing.
type Row struct {
	Title    string `yaml:"title"`
	Salary   string `yaml:"salary"`
	Location string `yaml:"location"`
	Platform string `yaml:"platform"`
}

// Raw converts r to a raw record.
func (r Row) Raw() listing.RawRecord {
	return listing.RawRecord{Title: r.Title, Salary: r.Salary, Location: r.Location, Platform: r.Platform}
}

// Settings mirrors dashboard.Settings in YAML.
type Settings struct {
	TopTitles    int     `yaml:"top_titles,omitempty"`
	TopPlatforms int     `yaml:"top_platforms,omitempty"`
	BinWidth     float64 `yaml:"bin_width,omitempty"`
}

// Dashboard converts s to dashboard settings.
func (s Settings) Dashboard() dashboard.Settings {
	return dashboard.Settings{TopTitles: s.TopTitles, TopPlatforms: s.TopPlatforms, BinWidth: s.BinWidth}
}

// QueryStep runs one named query.
type QueryStep struct {
	Query  string         `yaml:"query"`
	Args   dashboard.Args `yaml:"args,omitempty"`
	Expect *Expect        `yaml:"expect,omitempty"`
}

// Expect lists checks on a query outcome. Nil fields are not checked.
type Expect struct {
	Labels []string  `yaml:"labels,omitempty"`
	Values []float64 `yaml:"values,omitempty"`
	Total  *float64  `yaml:"total,omitempty"`
	Count  *int      `yaml:"count,omitempty"`
	Error  string    `yaml:"error,omitempty"`
}

// LoadScenario reads and validates a scenario YAML file. Unknown fields are
// rejected, and relative source and taxonomy paths are resolved against the
// file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "query:" vs "queries:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	scenario.Source = resolve(base, scenario.Source)
	scenario.Taxonomy = resolve(base, scenario.Taxonomy)

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// resolve joins relative file paths onto base. URLs and sqlite specs keep
// their prefix.
func resolve(base, spec string) string {
	if spec == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		return spec
	case strings.HasPrefix(spec, "sqlite:"):
		p := spec[len("sqlite:"):]
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		return "sqlite:" + p
	case filepath.IsAbs(spec):
		return spec
	default:
		return filepath.Join(base, spec)
	}
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Source == "" && len(s.Records) == 0 {
		return fmt.Errorf("one of source or records is required")
	}
	if s.Source != "" && len(s.Records) > 0 {
		return fmt.Errorf("source and records are mutually exclusive")
	}

	if len(s.Queries) == 0 {
		return fmt.Errorf("queries list is required and must be non-empty")
	}

	known := make(map[string]bool)
	for _, q := range dashboard.Queries() {
		known[q] = true
	}
	for i, step := range s.Queries {
		if step.Query == "" {
			return fmt.Errorf("queries[%d]: query is required", i)
		}
		// Bad names and fields are allowed only where an error is expected.
		if step.Expect != nil && step.Expect.Error != "" {
			continue
		}
		if !known[step.Query] {
			return fmt.Errorf("queries[%d]: unknown query %q", i, step.Query)
		}
		if step.Args.Field != "" {
			if _, err := listing.ParseField(string(step.Args.Field)); err != nil {
				return fmt.Errorf("queries[%d]: %w", i, err)
			}
		}
	}

	return nil
}
