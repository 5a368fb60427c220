package taxonomy

import (
	"fmt"
	"strings"
)

// Label is a category name. The empty label means "no keyword matched".
type Label string

// Unmatched is the group name used for titles no keyword matched.
const Unmatched = "Other"

// Taxonomy names, also the top-level keys of a taxonomy file.
const (
	NameLevel  = "level"
	NameDomain = "domain"
)

// Entry maps one category label to its keywords, in match order.
type Entry struct {
	Label    Label    `json:"label" yaml:"label"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Taxonomy is an ordered keyword table.
type Taxonomy struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Labels returns the entry labels in table order.
func (t Taxonomy) Labels() []Label {
	labels := make([]Label, len(t.Entries))
	for i, e := range t.Entries {
		labels[i] = e.Label
	}
	return labels
}

// Has reports whether label names an entry of t.
func (t Taxonomy) Has(label Label) bool {
	for _, e := range t.Entries {
		if e.Label == label {
			return true
		}
	}
	return false
}

// Validate checks a single table: labels and keywords must be non-blank,
// labels unique and none equal to Unmatched.
func (t Taxonomy) Validate() error {
	if len(t.Entries) == 0 {
		return &LoadError{Code: ErrCodeEmpty, Message: fmt.Sprintf("taxonomy %q has no entries", t.Name)}
	}
	seen := make(map[Label]bool, len(t.Entries))
	for i, e := range t.Entries {
		if strings.TrimSpace(string(e.Label)) == "" {
			return &LoadError{Code: ErrCodeBlankLabel, Message: fmt.Sprintf("%s[%d]: label is blank", t.Name, i)}
		}
		if e.Label == Unmatched {
			return &LoadError{Code: ErrCodeReserved, Message: fmt.Sprintf("%s: label %q is reserved for unmatched titles", t.Name, e.Label)}
		}
		if seen[e.Label] {
			return &LoadError{Code: ErrCodeDuplicate, Message: fmt.Sprintf("%s: duplicate label %q", t.Name, e.Label)}
		}
		seen[e.Label] = true
		if len(e.Keywords) == 0 {
			return &LoadError{Code: ErrCodeNoKeywords, Message: fmt.Sprintf("%s: %q has no keywords", t.Name, e.Label)}
		}
		for j, kw := range e.Keywords {
			if strings.TrimSpace(kw) == "" {
				return &LoadError{Code: ErrCodeBlankKeyword, Message: fmt.Sprintf("%s: %q keyword[%d] is blank", t.Name, e.Label, j)}
			}
		}
	}
	return nil
}

// Set is the pair of taxonomies applied to every record.
type Set struct {
	Level  Taxonomy `json:"level"`
	Domain Taxonomy `json:"domain"`
}

// Validate checks both tables and that they share no label.
func (s Set) Validate() error {
	if err := s.Level.Validate(); err != nil {
		return err
	}
	if err := s.Domain.Validate(); err != nil {
		return err
	}
	for _, l := range s.Level.Labels() {
		if s.Domain.Has(l) {
			return &LoadError{Code: ErrCodeOverlap, Message: fmt.Sprintf("label %q appears in both level and domain", l)}
		}
	}
	return nil
}

// Labels returns every label, level table first.
func (s Set) Labels() []Label {
	return append(s.Level.Labels(), s.Domain.Labels()...)
}

// Has reports whether label belongs to either table.
func (s Set) Has(label Label) bool {
	return s.Level.Has(label) || s.Domain.Has(label)
}
