package taxonomy

import "fmt"

// Error codes for taxonomy loading and validation.
const (
	ErrCodeRead         = "T001" // File could not be read
	ErrCodeParse        = "T002" // YAML or CUE syntax/evaluation error
	ErrCodeShape        = "T003" // Document does not have the expected shape
	ErrCodeUnknownKey   = "T004" // Top-level key other than level/domain
	ErrCodeFormat       = "T005" // Unsupported file extension
	ErrCodeEmpty        = "T101" // Taxonomy has no entries
	ErrCodeBlankLabel   = "T102" // Entry label is blank
	ErrCodeDuplicate    = "T103" // Label repeated within one taxonomy
	ErrCodeNoKeywords   = "T104" // Entry has no keywords
	ErrCodeBlankKeyword = "T105" // Keyword is blank
	ErrCodeOverlap      = "T106" // Label shared by level and domain
	ErrCodeBadKeyword   = "T107" // Keyword does not compile to a pattern
	ErrCodeReserved     = "T108" // Label is the reserved unmatched group name
)

// LoadError describes a taxonomy that could not be loaded or is invalid.
type LoadError struct {
	Code    string
	Message string
	Path    string // file path if known
	Line    int    // 1-based line if known
}

func (e *LoadError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s: %s", e.Path, e.Line, e.Code, e.Message)
	case e.Path != "":
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}
