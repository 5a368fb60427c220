package salary

import (
	"strconv"
	"strings"
)

// NotSpecified is the salary text used by listings that carry no salary.
const NotSpecified = "Not specified"

// annualMarker tags salary text as a yearly figure.
const annualMarker = "a year"

// Result is the outcome of the bucket path. Avg is nil whenever Band is not
// one of the annual bands.
type Result struct {
	Avg  *float64
	Band Band
}

// ParseAverage is the histogram path. It splits text on "-", strips every
// non-digit character from each side and averages the sides. A single side is
// returned as is. Any present side without digits is a parse failure.
//
// No annual marker is required: "$25-$30 an hour" parses to 27.5.
func ParseAverage(text string) (float64, bool) {
	if text == NotSpecified {
		return 0, false
	}

	parts := strings.Split(text, "-")
	lower, ok := digitsOf(parts[0])
	if !ok {
		return 0, false
	}
	if len(parts) == 1 {
		return lower, true
	}

	upper, ok := digitsOf(parts[1])
	if !ok {
		return 0, false
	}
	return (lower + upper) / 2, true
}

// Classify is the bucket path. Only text carrying the annual marker gets a
// numeric average and one of the eight bands; every other periodicity maps to
// BandOther. The NotSpecified sentinel and malformed annual text have no band.
func Classify(text string) Result {
	if text == NotSpecified {
		return Result{Band: BandNone}
	}
	if !strings.Contains(text, annualMarker) {
		return Result{Band: BandOther}
	}

	var avg float64
	if low, high, found := strings.Cut(text, "-"); found {
		l, ok := digitsOf(low)
		if !ok {
			return Result{Band: BandNone}
		}
		h, ok := digitsOf(firstToken(high))
		if !ok {
			return Result{Band: BandNone}
		}
		avg = (l + h) / 2
	} else {
		v, ok := digitsOf(firstToken(text))
		if !ok {
			return Result{Band: BandNone}
		}
		avg = v
	}

	return Result{Avg: &avg, Band: BandFor(avg)}
}

// digitsOf removes every non-digit rune and parses what is left.
func digitsOf(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
