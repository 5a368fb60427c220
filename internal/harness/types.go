package harness

import "github.com/roach88/jobdash/internal/dashboard"

// Outcome is the result of one query step.
type Outcome struct {
	Query string         `json:"query"`
	Args  dashboard.Args `json:"args,omitempty"`
	Value any            `json:"value,omitempty"`
	Error string         `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation held.
	Pass bool `json:"pass"`

	// SnapshotID identifies the snapshot the queries ran against.
	SnapshotID string `json:"snapshot_id"`

	// Outcomes holds one entry per query step, in order.
	Outcomes []Outcome `json:"outcomes"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Outcomes: []Outcome{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
