package dashboard

import (
	"errors"
	"fmt"

	"github.com/roach88/jobdash/internal/listing"
	"github.com/roach88/jobdash/internal/taxonomy"
)

// ErrUnknownQuery is returned by Run for names not in Queries.
var ErrUnknownQuery = errors.New("unknown query")

// Query names accepted by Run.
const (
	QuerySummary    = "summary"
	QueryCategories = "categories"
	QueryPlatforms  = "platforms"
	QueryBands      = "bands"
	QueryHistogram  = "histogram"
	QuerySalary     = "salary"
	QueryBandSalary = "bandsalary"
	QueryStates     = "states"
	QueryListings   = "listings"
	QueryTotal      = "total"
	QueryLocations  = "locations"
	QuerySkills     = "skills"
)

// Queries returns every query name in panel order.
func Queries() []string {
	return []string{
		QuerySummary, QueryCategories, QueryPlatforms, QueryBands, QueryHistogram,
		QuerySalary, QueryBandSalary, QueryStates, QueryListings, QueryTotal, QueryLocations, QuerySkills,
	}
}

// Args parameterizes a named query. Unused arguments are ignored.
type Args struct {
	Field    listing.Field  `json:"field,omitempty" yaml:"field,omitempty"`
	Category taxonomy.Label `json:"category,omitempty" yaml:"category,omitempty"`
	Location string         `json:"location,omitempty" yaml:"location,omitempty"`
	Limit    int            `json:"limit,omitempty" yaml:"limit,omitempty"`
}

func (a Args) field() listing.Field {
	if a.Field == "" {
		return listing.FieldLevel
	}
	return a.Field
}

// Run dispatches a query by name. The result is one of listing.Series,
// []listing.Histogram, []listing.Record, []string, []skills.Table, int or
// Summary.
func (d *Dashboard) Run(name string, args Args) (any, error) {
	switch name {
	case QuerySummary:
		return d.Summary(), nil
	case QueryCategories:
		return d.CategoryDistribution(args.field(), args.Category)
	case QueryPlatforms:
		return d.PlatformShare(), nil
	case QueryBands:
		return d.SalaryBands(), nil
	case QueryHistogram:
		return d.SalaryHistogram(args.field())
	case QuerySalary:
		return d.SalaryByCategory(args.field())
	case QueryBandSalary:
		return d.BandSalaryByCategory(args.field())
	case QueryStates:
		return d.States(), nil
	case QueryListings:
		records := d.Listings(Filter{Category: args.Category, Location: args.Location})
		if args.Limit > 0 && len(records) > args.Limit {
			records = records[:args.Limit]
		}
		return records, nil
	case QueryTotal:
		return d.Total(Filter{Category: args.Category, Location: args.Location}), nil
	case QueryLocations:
		return d.Locations(), nil
	case QuerySkills:
		return d.TopSkills(args.Category)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuery, name)
	}
}
