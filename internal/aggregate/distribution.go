package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/roach88/jobdash/internal/listing"
	"github.com/roach88/jobdash/internal/salary"
)

// BandDistribution counts records per annual salary band in fixed band
// order. Every band appears, zero-filled. BandOther and BandNone are left out.
func BandDistribution(records []listing.Record) listing.Series {
	counts := make(map[salary.Band]int)
	for _, r := range records {
		if r.Band.Annual() {
			counts[r.Band]++
		}
	}
	bands := salary.Bands()
	series := make(listing.Series, len(bands))
	for i, b := range bands {
		series[i] = listing.Point{Label: b.String(), Value: float64(counts[b])}
	}
	return series
}

// Geo counts records per state code. Records with an excluded location or
// without a state are dropped; no top-N cut applies.
func Geo(records []listing.Record) listing.Series {
	located := make([]listing.Record, 0, len(records))
	for _, r := range records {
		if !r.StateExcluded && r.State != "" {
			located = append(located, r)
		}
	}
	// FieldState is always valid.
	series, _ := Count(located, listing.FieldState, 0)
	return series
}

// Histogram bins the histogram-path average salary of records into
// fixed-width bins per group of field. A value v falls in the bin whose lower
// edge is floor(v/width)*width. Groups keep first-encounter order and bins
// ascend.
func Histogram(records []listing.Record, field listing.Field, width float64) ([]listing.Histogram, error) {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("histogram bin width must be positive, got %v", width)
	}
	if _, err := field.Value(listing.Record{}); err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var groups []string
	var bins []map[float64]int
	for _, r := range records {
		v, ok := AvgSalary(r)
		if !ok {
			continue
		}
		label, err := field.Value(r)
		if err != nil {
			return nil, err
		}
		i, seen := index[label]
		if !seen {
			i = len(groups)
			index[label] = i
			groups = append(groups, label)
			bins = append(bins, make(map[float64]int))
		}
		bins[i][math.Floor(v/width)*width]++
	}

	out := make([]listing.Histogram, len(groups))
	for i, label := range groups {
		h := listing.Histogram{Group: label, Bins: make([]listing.Bin, 0, len(bins[i]))}
		for lower, n := range bins[i] {
			h.Bins = append(h.Bins, listing.Bin{Lower: lower, Count: n})
		}
		sort.Slice(h.Bins, func(a, b int) bool { return h.Bins[a].Lower < h.Bins[b].Lower })
		out[i] = h
	}
	return out, nil
}
