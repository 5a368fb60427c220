package aggregate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jobdash/internal/listing"
	"github.com/roach88/jobdash/internal/salary"
)

func ptr(v float64) *float64 { return &v }

func platforms(labels ...string) []listing.Record {
	out := make([]listing.Record, len(labels))
	for i, l := range labels {
		out[i] = listing.Record{Index: i, Platform: l}
	}
	return out
}

func TestCountSortsDescendingStable(t *testing.T) {
	rs := platforms("b", "a", "c", "a", "c", "d")
	s, err := Count(rs, listing.FieldPlatform, 0)
	require.NoError(t, err)

	// a and c tie at 2; a was seen first. b and d tie at 1; b was seen first.
	assert.Equal(t, listing.Series{{Label: "a", Value: 2}, {Label: "c", Value: 2}, {Label: "b", Value: 1}, {Label: "d", Value: 1}}, s)
}

func TestCountTopNWithOthers(t *testing.T) {
	var rs []listing.Record
	for i := 1; i <= 15; i++ {
		for n := 0; n < i; n++ {
			rs = append(rs, listing.Record{Index: len(rs), Platform: fmt.Sprintf("p%02d", i)})
		}
	}

	s, err := Count(rs, listing.FieldPlatform, 10)
	require.NoError(t, err)
	require.Len(t, s, 11)

	assert.Equal(t, "p15", s[0].Label)
	assert.Equal(t, 15.0, s[0].Value)
	assert.Equal(t, "p06", s[9].Label)
	assert.Equal(t, listing.Others, s[10].Label)
	assert.Equal(t, float64(5+4+3+2+1), s[10].Value)
	assert.Equal(t, float64(len(rs)), s.Total())
}

func TestCountTopNNoResidual(t *testing.T) {
	rs := platforms("a", "b", "c")

	s, err := Count(rs, listing.FieldPlatform, 3)
	require.NoError(t, err)
	assert.Len(t, s, 3)
	_, hasOthers := s.Lookup(listing.Others)
	assert.False(t, hasOthers)

	s, err = Count(rs, listing.FieldPlatform, 5)
	require.NoError(t, err)
	assert.Len(t, s, 3)
}

func TestCountIncludesUnmatchedGroup(t *testing.T) {
	rs := []listing.Record{
		{Level: "Senior"},
		{},
		{},
	}
	s, err := Count(rs, listing.FieldLevel, 0)
	require.NoError(t, err)
	assert.Equal(t, listing.Series{{Label: "Other", Value: 2}, {Label: "Senior", Value: 1}}, s)
}

func TestCountEmpty(t *testing.T) {
	s, err := Count(nil, listing.FieldPlatform, 10)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestCountUnknownField(t *testing.T) {
	_, err := Count(nil, listing.Field("colour"), 0)
	assert.True(t, errors.Is(err, listing.ErrUnknownField))
}

func TestSumAndMean(t *testing.T) {
	rs := []listing.Record{
		{Domain: "Risk", AvgSalary: ptr(100)},
		{Domain: "Risk", AvgSalary: ptr(200)},
		{Domain: "Excel", AvgSalary: ptr(120)},
		{Domain: "Excel"},
		{Domain: "GIS", AvgSalary: ptr(50)},
		{Domain: "HR", AvgSalary: ptr(10)},
		{Domain: "HR", AvgSalary: ptr(30)},
	}

	sum, err := Sum(rs, listing.FieldDomain, AvgSalary, 0)
	require.NoError(t, err)
	assert.Equal(t, listing.Series{{Label: "Risk", Value: 300}, {Label: "Excel", Value: 120}, {Label: "GIS", Value: 50}, {Label: "HR", Value: 40}}, sum)

	mean, err := Mean(rs, listing.FieldDomain, AvgSalary, 0)
	require.NoError(t, err)
	assert.Equal(t, listing.Series{{Label: "Risk", Value: 150}, {Label: "Excel", Value: 120}, {Label: "GIS", Value: 50}, {Label: "HR", Value: 20}}, mean)

	// Others mean is taken over residual records: (50 + 10 + 30) / 3.
	mean, err = Mean(rs, listing.FieldDomain, AvgSalary, 2)
	require.NoError(t, err)
	require.Len(t, mean, 3)
	assert.Equal(t, listing.Point{Label: listing.Others, Value: 30}, mean[2])

	sum, err = Sum(rs, listing.FieldDomain, AvgSalary, 2)
	require.NoError(t, err)
	assert.Equal(t, listing.Point{Label: listing.Others, Value: 90}, sum[2])
}

func TestBandDistribution(t *testing.T) {
	rs := []listing.Record{
		{Band: salary.Band75to100},
		{Band: salary.Band75to100},
		{Band: salary.Band200Plus},
		{Band: salary.BandOther},
		{Band: salary.BandNone},
	}
	s := BandDistribution(rs)
	require.Len(t, s, 8)
	assert.Equal(t, []string{"<50k", "50k-75k", "75k-100k", "100k-125k", "125k-150k", "150k-175k", "175k-200k", "200k+"}, s.Labels())
	assert.Equal(t, 2.0, s[2].Value)
	assert.Equal(t, 1.0, s[7].Value)
	assert.Equal(t, 0.0, s[0].Value)
	assert.Equal(t, 3.0, s.Total())
}

func TestGeo(t *testing.T) {
	rs := []listing.Record{
		{LocationText: "Austin, TX", State: "TX"},
		{LocationText: "Dallas, TX", State: "TX"},
		{LocationText: "Boston, MA", State: "MA"},
		{LocationText: "Anywhere", StateExcluded: true},
		{LocationText: "Remote, Global"},
	}
	assert.Equal(t, listing.Series{{Label: "TX", Value: 2}, {Label: "MA", Value: 1}}, Geo(rs))
	assert.Empty(t, Geo(nil))
}

func TestHistogram(t *testing.T) {
	rs := []listing.Record{
		{Level: "Senior", AvgSalary: ptr(95000)},
		{Level: "Junior", AvgSalary: ptr(52000)},
		{Level: "Senior", AvgSalary: ptr(91000)},
		{Level: "Senior", AvgSalary: ptr(120000)},
		{Level: "Junior"},
		{AvgSalary: ptr(60000)},
	}

	hs, err := Histogram(rs, listing.FieldLevel, 10000)
	require.NoError(t, err)
	require.Len(t, hs, 3)

	assert.Equal(t, "Senior", hs[0].Group)
	assert.Equal(t, []listing.Bin{{Lower: 90000, Count: 2}, {Lower: 120000, Count: 1}}, hs[0].Bins)
	assert.Equal(t, "Junior", hs[1].Group)
	assert.Equal(t, []listing.Bin{{Lower: 50000, Count: 1}}, hs[1].Bins)
	assert.Equal(t, "Other", hs[2].Group)
}

func TestHistogramRejectsBadWidth(t *testing.T) {
	_, err := Histogram(nil, listing.FieldLevel, 0)
	assert.Error(t, err)
	_, err = Histogram(nil, listing.Field("colour"), 1000)
	assert.True(t, errors.Is(err, listing.ErrUnknownField))
}
