// Package outlier trims records whose average salary falls outside the
// interquartile fence [Q1 - 1.5*IQR, Q3 + 1.5*IQR].
//
// Bounds are computed from whatever values are passed in. There is no special
// case for degenerate input: a zero IQR fences everything to a single value,
// and an empty column yields NaN bounds that retain nothing.
package outlier

import (
	"math"
	"slices"

	"github.com/roach88/jobdash/internal/listing"
)

// FenceFactor is the IQR multiplier for the fences.
const FenceFactor = 1.5

// Bounds is the result of the quartile computation.
type Bounds struct {
	Q1    float64 `json:"q1"`
	Q3    float64 `json:"q3"`
	IQR   float64 `json:"iqr"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether v lies within the fences, inclusive on both ends.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// Quantile returns the q-th quantile of values using linear interpolation
// between the closest ranks: position (n-1)*q on the sorted values.
// values is not modified. Empty input yields NaN.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return quantileSorted(sorted, q)
}

func quantileSorted(sorted []float64, q float64) float64 {
	pos := float64(len(sorted)-1) * q
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// ComputeBounds computes the quartiles and fences of values.
func ComputeBounds(values []float64) Bounds {
	if len(values) == 0 {
		nan := math.NaN()
		return Bounds{Q1: nan, Q3: nan, IQR: nan, Lower: nan, Upper: nan}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	q1 := quantileSorted(sorted, 0.25)
	q3 := quantileSorted(sorted, 0.75)
	iqr := q3 - q1
	return Bounds{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - FenceFactor*iqr,
		Upper: q3 + FenceFactor*iqr,
	}
}

// Column returns the non-nil average salaries of records in order.
func Column(records []listing.Record) []float64 {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if r.AvgSalary != nil {
			values = append(values, *r.AvgSalary)
		}
	}
	return values
}

// Filter returns a new slice of the records whose average salary lies within
// b. Records without an average are never retained.
func Filter(records []listing.Record, b Bounds) []listing.Record {
	out := make([]listing.Record, 0, len(records))
	for _, r := range records {
		if r.AvgSalary != nil && b.Contains(*r.AvgSalary) {
			out = append(out, r)
		}
	}
	return out
}

// Trim computes bounds over values and filters records against them.
func Trim(values []float64, records []listing.Record) ([]listing.Record, Bounds) {
	b := ComputeBounds(values)
	return Filter(records, b), b
}
