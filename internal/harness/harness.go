package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/jobdash/internal/dashboard"
	"github.com/roach88/jobdash/internal/listing"
	"github.com/roach88/jobdash/internal/pipeline"
	"github.com/roach88/jobdash/internal/source"
	"github.com/roach88/jobdash/internal/taxonomy"
)

// Run builds the scenario's snapshot and executes its queries.
//
// Execution flow:
//  1. Load records from the source or the inline rows
//  2. Load the taxonomy file or the built-in tables
//  3. Build the snapshot
//  4. Run each query and check its expectations
//
// An error is returned only when the snapshot cannot be built; failed
// expectations are reported in Result.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	// Suppress build logs in scenario runs.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	raw, err := scenarioRecords(ctx, scenario, logger)
	if err != nil {
		return nil, err
	}

	set, err := scenarioTaxonomy(scenario)
	if err != nil {
		return nil, err
	}
	classifiers, err := taxonomy.Compile(set)
	if err != nil {
		return nil, fmt.Errorf("failed to compile taxonomy: %w", err)
	}

	snap, err := pipeline.Build(raw, pipeline.Options{Classifiers: classifiers, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}
	d := dashboard.New(snap, nil, scenario.Settings.Dashboard())

	result := NewResult()
	result.SnapshotID = snap.ID.String()
	for i, step := range scenario.Queries {
		value, qerr := d.Run(step.Query, step.Args)
		outcome := Outcome{Query: step.Query, Args: step.Args}
		if qerr != nil {
			outcome.Error = qerr.Error()
		} else {
			outcome.Value = value
		}
		result.Outcomes = append(result.Outcomes, outcome)

		for _, msg := range checkExpect(step.Expect, value, qerr) {
			result.AddError(fmt.Sprintf("queries[%d] %s: %s", i, step.Query, msg))
		}
	}

	return result, nil
}

func scenarioRecords(ctx context.Context, s *Scenario, logger *slog.Logger) ([]listing.RawRecord, error) {
	if s.Source == "" {
		raw := make([]listing.RawRecord, len(s.Records))
		for i, r := range s.Records {
			raw[i] = r.Raw()
		}
		return raw, nil
	}
	raw, err := source.Load(ctx, s.Source, source.Options{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to load source: %w", err)
	}
	return raw, nil
}

func scenarioTaxonomy(s *Scenario) (taxonomy.Set, error) {
	if s.Taxonomy == "" {
		return taxonomy.Default()
	}
	set, err := taxonomy.LoadFile(s.Taxonomy)
	if err != nil {
		return taxonomy.Set{}, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	return set, nil
}
