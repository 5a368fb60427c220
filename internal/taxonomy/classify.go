package taxonomy

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Classifier matches titles against one compiled taxonomy.
// A Classifier is immutable and safe for concurrent use.
type Classifier struct {
	name  string
	rules []rule
}

type rule struct {
	label   Label
	keyword string
	re      *regexp.Regexp
}

// Keyword boundaries. Go's \b only knows ASCII word characters, so letters
// and digits of any script are spelled out to keep "ga" out of "gaëlle".
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:$|[^\p{L}\p{N}_])`
)

// NewClassifier compiles every keyword of t into a whole-word pattern,
// keeping entry order and keyword order.
func NewClassifier(t Taxonomy) (*Classifier, error) {
	c := &Classifier{name: t.Name}
	for _, e := range t.Entries {
		for _, kw := range e.Keywords {
			kw = strings.ToLower(norm.NFC.String(kw))
			re, err := regexp.Compile(wordStart + regexp.QuoteMeta(kw) + wordEnd)
			if err != nil {
				return nil, &LoadError{
					Code:    ErrCodeBadKeyword,
					Message: fmt.Sprintf("%s: %q keyword %q: %v", t.Name, e.Label, kw, err),
				}
			}
			c.rules = append(c.rules, rule{label: e.Label, keyword: kw, re: re})
		}
	}
	return c, nil
}

// Name returns the name of the compiled taxonomy.
func (c *Classifier) Name() string {
	return c.name
}

// Classify returns the label of the first keyword that occurs in title as a
// whole word. The second result is false when nothing matched.
//
// "bi" does not match "Abigail": partial-word hits never count.
func (c *Classifier) Classify(title string) (Label, bool) {
	label, _, ok := c.Explain(title)
	return label, ok
}

// Explain is Classify plus the keyword that decided the match.
func (c *Classifier) Explain(title string) (Label, string, bool) {
	lower := strings.ToLower(norm.NFC.String(title))
	for _, r := range c.rules {
		if r.re.MatchString(lower) {
			return r.label, r.keyword, true
		}
	}
	return "", "", false
}

// Classifiers is the compiled form of a Set.
type Classifiers struct {
	Level  *Classifier
	Domain *Classifier
}

// Compile builds classifiers for both tables of s.
func Compile(s Set) (*Classifiers, error) {
	level, err := NewClassifier(s.Level)
	if err != nil {
		return nil, err
	}
	domain, err := NewClassifier(s.Domain)
	if err != nil {
		return nil, err
	}
	return &Classifiers{Level: level, Domain: domain}, nil
}
