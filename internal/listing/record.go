package listing

import (
	"github.com/roach88/jobdash/internal/salary"
	"github.com/roach88/jobdash/internal/taxonomy"
)

// Required source columns.
const (
	ColumnTitle    = "title"
	ColumnSalary   = "salary"
	ColumnLocation = "location"
	ColumnPlatform = "platform"
)

// RequiredColumns lists the columns every tabular source must carry.
var RequiredColumns = []string{ColumnTitle, ColumnSalary, ColumnLocation, ColumnPlatform}

// RawRecord is one listing as read from the source.
type RawRecord struct {
	Title    string            `json:"title"`
	Salary   string            `json:"salary"`
	Location string            `json:"location"`
	Platform string            `json:"platform"`
	Extra    map[string]string `json:"extra,omitempty"` // other source columns
}

// Record is an enriched listing.
type Record struct {
	Index        int    `json:"index"`
	Title        string `json:"title"`
	SalaryText   string `json:"salary_text"`
	LocationText string `json:"location_text"`
	Platform     string `json:"platform"`

	Level  taxonomy.Label `json:"level,omitempty"`
	Domain taxonomy.Label `json:"domain,omitempty"`

	AvgSalary *float64    `json:"avg_salary,omitempty"`
	Band      salary.Band `json:"band,omitempty"`
	BandAvg   *float64    `json:"band_avg,omitempty"`

	State         string `json:"state,omitempty"`
	StateExcluded bool   `json:"state_excluded,omitempty"`
}

// Category returns the level label, falling back to the domain label.
func (r Record) Category() taxonomy.Label {
	if r.Level != "" {
		return r.Level
	}
	return r.Domain
}

// InCategory reports whether either taxonomy assigned label to r.
func (r Record) InCategory(label taxonomy.Label) bool {
	return label != "" && (r.Level == label || r.Domain == label)
}
