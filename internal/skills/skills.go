// Package skills holds the top-skill tables shown next to a selected
// category. Tables are keyed by the exact category label the classifier
// emits, and Check reports labels the two sides disagree on.
package skills

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/jobdash/internal/source"
	"github.com/roach88/jobdash/internal/taxonomy"
)

// MaxRank is the highest "Top N" column read from a skills file.
const MaxRank = 10

// Table is the ranked skill list for one category.
type Table struct {
	Category  taxonomy.Label `json:"category"`
	SkillType string         `json:"skill_type"`
	Skills    []string       `json:"skills"`
}

// Spec locates one skills file.
type Spec struct {
	Path      string // path or http(s) URL
	KeyColumn string // column holding the category label
	SkillType string // column suffix, "Skills" for "Top 1 Skills"
}

// RankColumn returns the header of the rank-th skill column.
func RankColumn(rank int, skillType string) string {
	return fmt.Sprintf("Top %d %s", rank, skillType)
}

// Load reads every table from one skills file. Rank columns are read in order
// from "Top 1" until the first one the file lacks; blank cells are skipped.
func Load(ctx context.Context, spec Spec, opts source.Options) ([]Table, error) {
	rc, err := source.Open(ctx, spec.Path, opts)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	t, err := source.ReadTable(rc)
	if err != nil {
		return nil, fmt.Errorf("skills %s: %w", spec.Path, err)
	}

	key := t.Index(spec.KeyColumn)
	if key < 0 {
		return nil, fmt.Errorf("skills %s: missing key column %q", spec.Path, spec.KeyColumn)
	}

	var ranks []int
	for rank := 1; rank <= MaxRank; rank++ {
		i := t.Index(RankColumn(rank, spec.SkillType))
		if i < 0 {
			break
		}
		ranks = append(ranks, i)
	}
	if len(ranks) == 0 {
		return nil, fmt.Errorf("skills %s: no %q columns", spec.Path, RankColumn(1, spec.SkillType))
	}

	tables := make([]Table, 0, len(t.Rows))
	for _, row := range t.Rows {
		tbl := Table{
			Category:  taxonomy.Label(strings.TrimSpace(row[key])),
			SkillType: spec.SkillType,
		}
		for _, i := range ranks {
			if cell := ParseSkills(row[i]); cell != "" {
				tbl.Skills = append(tbl.Skills, cell)
			}
		}
		tables = append(tables, tbl)
	}
	return tables, nil
}

// ParseSkills renders a list literal cell such as "['SQL', 'Python']" as
// "SQL, Python". Anything else is returned trimmed.
func ParseSkills(cell string) string {
	cell = strings.TrimSpace(cell)
	if len(cell) < 2 || cell[0] != '[' || cell[len(cell)-1] != ']' {
		return cell
	}

	inner := strings.TrimSpace(cell[1 : len(cell)-1])
	if inner == "" {
		return ""
	}
	parts := strings.Split(inner, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `'"`)
		if p != "" {
			items = append(items, p)
		}
	}
	return strings.Join(items, ", ")
}

// Catalog indexes tables by category label.
type Catalog struct {
	tables map[taxonomy.Label][]Table
	order  []taxonomy.Label
}

// NewCatalog builds a catalog from tables in order.
func NewCatalog(tables ...Table) *Catalog {
	c := &Catalog{tables: make(map[taxonomy.Label][]Table)}
	for _, t := range tables {
		c.Add(t)
	}
	return c
}

// Add registers t. A table with the same label and skill type replaces the
// earlier one.
func (c *Catalog) Add(t Table) {
	existing, ok := c.tables[t.Category]
	if !ok {
		c.order = append(c.order, t.Category)
	}
	for i, e := range existing {
		if e.SkillType == t.SkillType {
			existing[i] = t
			return
		}
	}
	c.tables[t.Category] = append(existing, t)
}

// Lookup returns the tables for label, one per skill type.
func (c *Catalog) Lookup(label taxonomy.Label) ([]Table, bool) {
	if c == nil {
		return nil, false
	}
	t, ok := c.tables[label]
	if !ok {
		return nil, false
	}
	return append([]Table(nil), t...), true
}

// Labels returns catalogued labels in insertion order.
func (c *Catalog) Labels() []taxonomy.Label {
	if c == nil {
		return nil
	}
	return append([]taxonomy.Label(nil), c.order...)
}

// Report is the outcome of Check.
type Report struct {
	Missing []taxonomy.Label // taxonomy labels with no skills table
	Orphans []taxonomy.Label // skills tables with no taxonomy label
}

// OK reports whether every table belongs to a taxonomy label.
func (r Report) OK() bool {
	return len(r.Orphans) == 0
}

// Err returns an error naming the orphaned labels, or nil.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	names := make([]string, len(r.Orphans))
	for i, l := range r.Orphans {
		names[i] = string(l)
	}
	return fmt.Errorf("skills tables for unknown categories: %s", strings.Join(names, ", "))
}

// Check compares the catalog against the taxonomies. Missing labels are
// informational: a category is allowed to have no skills. Orphans are
// tables nothing will ever look up.
func (c *Catalog) Check(set taxonomy.Set) Report {
	var r Report
	for _, l := range set.Labels() {
		if _, ok := c.Lookup(l); !ok {
			r.Missing = append(r.Missing, l)
		}
	}
	for _, l := range c.Labels() {
		if !set.Has(l) && l != taxonomy.Unmatched {
			r.Orphans = append(r.Orphans, l)
		}
	}
	return r
}
