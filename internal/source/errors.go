package source

import "fmt"

// Error codes for source loading.
const (
	ErrCodeOpen          = "S001" // File could not be opened
	ErrCodeFetch         = "S002" // HTTP request failed or returned non-2xx
	ErrCodeParse         = "S003" // CSV syntax error or wrong field count
	ErrCodeNoHeader      = "S004" // Source has no header row
	ErrCodeMissingColumn = "S005" // Required column absent
	ErrCodeDatabase      = "S006" // SQLite open or query failed
	ErrCodeEmpty         = "S007" // Source yielded no records
	ErrCodeSpec          = "S008" // Source spec is blank or malformed
)

// LoadError describes a source that could not be read.
type LoadError struct {
	Code    string
	Source  string // source spec as given
	Message string
	Err     error // underlying cause, if any
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Source != "" {
		return fmt.Sprintf("%s: %s: %s", e.Source, e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
