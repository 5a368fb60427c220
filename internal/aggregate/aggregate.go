// Package aggregate reduces record sets to ordered chart series.
//
// Ordering rules shared by every reduction:
//   - groups sort by their value, descending
//   - ties keep first-encounter order (stable sort over input order)
//   - with topN > 0 and more than topN groups, the first topN are kept and one
//     synthetic listing.Others group absorbs the rest
//
// Empty input yields an empty series, never an error.
package aggregate

import (
	"sort"

	"github.com/roach88/jobdash/internal/listing"
)

// Value extracts a numeric value from a record. ok is false when the record
// has no value and must be skipped.
type Value func(r listing.Record) (v float64, ok bool)

// AvgSalary is the histogram-path average.
func AvgSalary(r listing.Record) (float64, bool) {
	if r.AvgSalary == nil {
		return 0, false
	}
	return *r.AvgSalary, true
}

// BandAvg is the band-path average.
func BandAvg(r listing.Record) (float64, bool) {
	if r.BandAvg == nil {
		return 0, false
	}
	return *r.BandAvg, true
}

type group struct {
	label string
	count int     // records counted
	sum   float64 // sum of values (Sum/Mean only)
}

// reducer turns a group into its series value.
type reducer func(g group) float64

func byCount(g group) float64 { return float64(g.count) }
func bySum(g group) float64   { return g.sum }
func byMean(g group) float64 {
	if g.count == 0 {
		return 0
	}
	return g.sum / float64(g.count)
}

// Count returns the number of records per group of field.
func Count(records []listing.Record, field listing.Field, topN int) (listing.Series, error) {
	groups, err := collect(records, field, nil)
	if err != nil {
		return nil, err
	}
	return reduce(groups, byCount, topN), nil
}

// Sum returns the sum of value per group. Records without a value are
// skipped; groups with no valued record do not appear.
func Sum(records []listing.Record, field listing.Field, value Value, topN int) (listing.Series, error) {
	groups, err := collect(records, field, value)
	if err != nil {
		return nil, err
	}
	return reduce(groups, bySum, topN), nil
}

// Mean returns the mean of value per group. The Others group, if any, is the
// mean over every residual record, not the mean of residual means.
func Mean(records []listing.Record, field listing.Field, value Value, topN int) (listing.Series, error) {
	groups, err := collect(records, field, value)
	if err != nil {
		return nil, err
	}
	return reduce(groups, byMean, topN), nil
}

// collect groups records in first-encounter order. A nil value counts every
// record; otherwise only valued records count and their values are summed.
func collect(records []listing.Record, field listing.Field, value Value) ([]group, error) {
	// Reject unknown fields even for empty input.
	if _, err := field.Value(listing.Record{}); err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var groups []group
	for _, r := range records {
		v := 0.0
		if value != nil {
			var ok bool
			if v, ok = value(r); !ok {
				continue
			}
		}
		label, err := field.Value(r)
		if err != nil {
			return nil, err
		}
		i, seen := index[label]
		if !seen {
			i = len(groups)
			index[label] = i
			groups = append(groups, group{label: label})
		}
		groups[i].count++
		groups[i].sum += v
	}
	return groups, nil
}

func reduce(groups []group, fn reducer, topN int) listing.Series {
	sort.SliceStable(groups, func(i, j int) bool {
		return fn(groups[i]) > fn(groups[j])
	})

	keep := groups
	var rest []group
	if topN > 0 && len(groups) > topN {
		keep, rest = groups[:topN], groups[topN:]
	}

	series := make(listing.Series, 0, len(keep)+1)
	for _, g := range keep {
		series = append(series, listing.Point{Label: g.label, Value: fn(g)})
	}
	if len(rest) > 0 {
		others := group{label: listing.Others}
		for _, g := range rest {
			others.count += g.count
			others.sum += g.sum
		}
		series = append(series, listing.Point{Label: others.label, Value: fn(others)})
	}
	return series
}
