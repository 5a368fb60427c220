package listing

import (
	"errors"
	"fmt"

	"github.com/roach88/jobdash/internal/taxonomy"
)

// ErrUnknownField is returned for grouping dimensions that do not exist.
var ErrUnknownField = errors.New("unknown field")

// Field is a grouping dimension over records.
type Field string

// Grouping dimensions.
const (
	FieldLevel    Field = "level"
	FieldDomain   Field = "domain"
	FieldCategory Field = "category" // level, falling back to domain
	FieldTitle    Field = "title"
	FieldPlatform Field = "platform"
	FieldLocation Field = "location"
	FieldState    Field = "state"
	FieldBand     Field = "band"
)

// Absent labels the group of records with no state or no salary band.
const Absent = "Unknown"

// Fields returns every grouping dimension.
func Fields() []Field {
	return []Field{
		FieldLevel, FieldDomain, FieldCategory, FieldTitle,
		FieldPlatform, FieldLocation, FieldState, FieldBand,
	}
}

// ParseField maps a field name to its Field.
func ParseField(name string) (Field, error) {
	for _, f := range Fields() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Value returns the group label of r along f. Unmatched categories group
// under taxonomy.Unmatched; missing states and bands under Absent.
func (f Field) Value(r Record) (string, error) {
	switch f {
	case FieldLevel:
		return orElse(string(r.Level), taxonomy.Unmatched), nil
	case FieldDomain:
		return orElse(string(r.Domain), taxonomy.Unmatched), nil
	case FieldCategory:
		return orElse(string(r.Category()), taxonomy.Unmatched), nil
	case FieldTitle:
		return r.Title, nil
	case FieldPlatform:
		return r.Platform, nil
	case FieldLocation:
		return r.LocationText, nil
	case FieldState:
		return orElse(r.State, Absent), nil
	case FieldBand:
		return orElse(r.Band.String(), Absent), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
}

func orElse(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
