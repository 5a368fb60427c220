package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/roach88/jobdash/internal/dashboard"
	"github.com/roach88/jobdash/internal/listing"
	"github.com/roach88/jobdash/internal/skills"
)

// renderText prints a query result for humans. Unknown types fall back to
// fmt's default formatting.
func renderText(w io.Writer, data any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	switch v := data.(type) {
	case listing.Series:
		if len(v) == 0 {
			fmt.Fprintln(tw, "(no data)")
		}
		for _, p := range v {
			fmt.Fprintf(tw, "%s\t%s\n", p.Label, formatNumber(p.Value))
		}
	case []listing.Histogram:
		if len(v) == 0 {
			fmt.Fprintln(tw, "(no data)")
		}
		for _, h := range v {
			fmt.Fprintln(tw, h.Group)
			for _, b := range h.Bins {
				fmt.Fprintf(tw, "  %s\t%d\n", formatNumber(b.Lower), b.Count)
			}
		}
	case []listing.Record:
		renderRecords(tw, v)
	case []skills.Table:
		for _, t := range v {
			fmt.Fprintf(tw, "%s (%s)\n", t.Category, t.SkillType)
			for i, s := range t.Skills {
				fmt.Fprintf(tw, "  %d.\t%s\n", i+1, s)
			}
		}
	case []string:
		for _, s := range v {
			fmt.Fprintln(tw, s)
		}
	case dashboard.Summary:
		renderSummary(tw, v)
	default:
		fmt.Fprintln(tw, v)
	}
	return tw.Flush()
}

func renderRecords(w io.Writer, records []listing.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No matching listings.")
		return
	}
	fmt.Fprintln(w, "TITLE\tPLATFORM\tLOCATION\tSALARY\tLEVEL\tDOMAIN")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(r.Title, 48), r.Platform, r.LocationText, r.SalaryText,
			orDash(string(r.Level)), orDash(string(r.Domain)))
	}
}

func renderSummary(w io.Writer, s dashboard.Summary) {
	fmt.Fprintf(w, "Snapshot\t%s\n", s.ID)
	fmt.Fprintf(w, "Records\t%d\n", s.Records)
	fmt.Fprintf(w, "With salary\t%d\n", s.Salaried)
	fmt.Fprintf(w, "Within fences\t%d\n", s.Processed)
	fmt.Fprintf(w, "Trimmed\t%d\n", s.Trimmed)
	if s.Bounds != nil {
		fmt.Fprintf(w, "Fences\t[%s, %s]\n", formatNumber(s.Bounds.Lower), formatNumber(s.Bounds.Upper))
	}
}

// formatNumber prints integral values without a fraction.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
