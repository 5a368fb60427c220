package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/jobdash/internal/listing"
)

// Table is a parsed CSV document. Header names are lower-cased and trimmed.
type Table struct {
	Header []string
	Rows   [][]string
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	name = normalizeHeader(name)
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// ReadTable parses CSV with a mandatory header row. Every row must have as
// many fields as the header.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0 // header fixes the count

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &LoadError{Code: ErrCodeNoHeader, Message: "source has no header row"}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: "reading header", Err: err}
	}

	t := &Table{Header: make([]string, len(header))}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		t.Header[i] = normalizeHeader(h)
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeParse, Message: "reading row", Err: err}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// Records maps table rows to raw listings. The required columns must all be
// present; any other columns are kept in RawRecord.Extra.
func Records(t *Table) ([]listing.RawRecord, error) {
	idx := make(map[string]int, len(listing.RequiredColumns))
	var missing []string
	for _, col := range listing.RequiredColumns {
		i := t.Index(col)
		if i < 0 {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, &LoadError{
			Code:    ErrCodeMissingColumn,
			Message: fmt.Sprintf("missing required column(s): %s", strings.Join(missing, ", ")),
		}
	}

	required := make(map[int]bool, len(idx))
	for _, i := range idx {
		required[i] = true
	}

	out := make([]listing.RawRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := listing.RawRecord{
			Title:    row[idx[listing.ColumnTitle]],
			Salary:   row[idx[listing.ColumnSalary]],
			Location: row[idx[listing.ColumnLocation]],
			Platform: row[idx[listing.ColumnPlatform]],
		}
		for i, v := range row {
			if required[i] || t.Header[i] == "" {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[t.Header[i]] = v
		}
		out = append(out, rec)
	}
	return out, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
