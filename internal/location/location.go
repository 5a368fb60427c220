// Package location extracts US state codes from free-text job locations.
package location

import "regexp"

// Locations that name no place at all. Listings with these are dropped from
// geographic aggregation entirely.
const (
	Anywhere     = "Anywhere"
	UnitedStates = "United States"
)

var stateSuffix = regexp.MustCompile(`,\s*([A-Z]{2})$`)

// IsExcluded reports whether text is one of the placeless sentinels. The
// comparison is exact and case-sensitive.
func IsExcluded(text string) bool {
	return text == Anywhere || text == UnitedStates
}

// ExtractState returns the two-letter code that ends a "City, XX" location.
// Excluded sentinels and text without a trailing ", XX" yield false.
func ExtractState(text string) (string, bool) {
	if IsExcluded(text) {
		return "", false
	}
	m := stateSuffix.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
