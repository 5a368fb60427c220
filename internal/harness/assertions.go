package harness

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/jobdash/internal/dashboard"
	"github.com/roach88/jobdash/internal/listing"
	"github.com/roach88/jobdash/internal/skills"
)

// checkExpect returns one message per failed expectation.
func checkExpect(e *Expect, value any, err error) []string {
	if e == nil {
		if err != nil {
			return []string{fmt.Sprintf("unexpected error: %v", err)}
		}
		return nil
	}

	if e.Error != "" {
		if err == nil {
			return []string{fmt.Sprintf("expected error containing %q, got none", e.Error)}
		}
		if !strings.Contains(err.Error(), e.Error) {
			return []string{fmt.Sprintf("expected error containing %q, got %q", e.Error, err.Error())}
		}
		return nil
	}
	if err != nil {
		return []string{fmt.Sprintf("unexpected error: %v", err)}
	}

	var msgs []string
	if e.Labels != nil {
		got, ok := labelsOf(value)
		switch {
		case !ok:
			msgs = append(msgs, fmt.Sprintf("labels: result %T has no labels", value))
		case !reflect.DeepEqual(got, e.Labels):
			msgs = append(msgs, fmt.Sprintf("labels: expected %v, got %v", e.Labels, got))
		}
	}
	if e.Values != nil {
		s, ok := value.(listing.Series)
		switch {
		case !ok:
			msgs = append(msgs, fmt.Sprintf("values: result %T is not a series", value))
		case !reflect.DeepEqual(valuesOf(s), e.Values):
			msgs = append(msgs, fmt.Sprintf("values: expected %v, got %v", e.Values, valuesOf(s)))
		}
	}
	if e.Total != nil {
		got, ok := totalOf(value)
		switch {
		case !ok:
			msgs = append(msgs, fmt.Sprintf("total: result %T has no total", value))
		case got != *e.Total:
			msgs = append(msgs, fmt.Sprintf("total: expected %v, got %v", *e.Total, got))
		}
	}
	if e.Count != nil {
		got, ok := countOf(value)
		switch {
		case !ok:
			msgs = append(msgs, fmt.Sprintf("count: result %T has no count", value))
		case got != *e.Count:
			msgs = append(msgs, fmt.Sprintf("count: expected %d, got %d", *e.Count, got))
		}
	}
	return msgs
}

func labelsOf(value any) ([]string, bool) {
	switch v := value.(type) {
	case listing.Series:
		return v.Labels(), true
	case []listing.Histogram:
		out := make([]string, len(v))
		for i, h := range v {
			out[i] = h.Group
		}
		return out, true
	case []string:
		return v, true
	default:
		return nil, false
	}
}

func valuesOf(s listing.Series) []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

func totalOf(value any) (float64, bool) {
	switch v := value.(type) {
	case listing.Series:
		return v.Total(), true
	case int:
		return float64(v), true
	case []listing.Record:
		return float64(len(v)), true
	case dashboard.Summary:
		return float64(v.Records), true
	default:
		return 0, false
	}
}

func countOf(value any) (int, bool) {
	switch v := value.(type) {
	case listing.Series:
		return len(v), true
	case []listing.Histogram:
		return len(v), true
	case []listing.Record:
		return len(v), true
	case []string:
		return len(v), true
	case []skills.Table:
		return len(v), true
	default:
		return 0, false
	}
}
