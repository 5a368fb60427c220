package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/jobdash/internal/listing"
	"github.com/roach88/jobdash/internal/location"
	"github.com/roach88/jobdash/internal/outlier"
	"github.com/roach88/jobdash/internal/salary"
	"github.com/roach88/jobdash/internal/taxonomy"
)

// ErrEmptySource is returned when Build is given no records.
var ErrEmptySource = errors.New("source has no records")

// snapshotNamespace scopes snapshot IDs derived from digests.
var snapshotNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/roach88/jobdash/snapshot"))

// Options configures Build.
type Options struct {
	// Classifiers assigns level and domain labels. Required.
	Classifiers *taxonomy.Classifiers

	// Logger receives the build summary. nil uses slog.Default().
	Logger *slog.Logger
}

// Snapshot is the immutable output of one build.
type Snapshot struct {
	ID        uuid.UUID        `json:"id"`
	Digest    string           `json:"digest"`
	All       []listing.Record `json:"all"`
	Processed []listing.Record `json:"processed"`
	Bounds    outlier.Bounds   `json:"-"`
}

// Build enriches raw, trims salary outliers and seals the result.
func Build(raw []listing.RawRecord, opts Options) (*Snapshot, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySource
	}
	if opts.Classifiers == nil || opts.Classifiers.Level == nil || opts.Classifiers.Domain == nil {
		return nil, errors.New("pipeline: classifiers are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	all := make([]listing.Record, len(raw))
	for i, r := range raw {
		all[i] = Enrich(i, r, opts.Classifiers)
	}

	processed, bounds := outlier.Trim(outlier.Column(all), all)

	digest, err := listing.Digest(listing.DomainSnapshot, all, processed)
	if err != nil {
		return nil, fmt.Errorf("failed to digest snapshot: %w", err)
	}

	s := &Snapshot{
		ID:        uuid.NewSHA1(snapshotNamespace, []byte(digest)),
		Digest:    digest,
		All:       all,
		Processed: processed,
		Bounds:    bounds,
	}

	logger.Info("snapshot built",
		"id", s.ID.String(),
		"records", len(all),
		"processed", len(processed),
		"lower", bounds.Lower,
		"upper", bounds.Upper,
	)
	return s, nil
}

// Enrich derives the classified and parsed fields of one raw record.
func Enrich(index int, raw listing.RawRecord, c *taxonomy.Classifiers) listing.Record {
	rec := listing.Record{
		Index:        index,
		Title:        raw.Title,
		SalaryText:   raw.Salary,
		LocationText: raw.Location,
		Platform:     raw.Platform,
	}

	rec.Level, _ = c.Level.Classify(raw.Title)
	rec.Domain, _ = c.Domain.Classify(raw.Title)

	if avg, ok := salary.ParseAverage(raw.Salary); ok {
		rec.AvgSalary = &avg
	}
	res := salary.Classify(raw.Salary)
	rec.Band = res.Band
	rec.BandAvg = res.Avg

	rec.StateExcluded = location.IsExcluded(raw.Location)
	rec.State, _ = location.ExtractState(raw.Location)

	return rec
}

// Len returns the number of enriched records.
func (s *Snapshot) Len() int {
	return len(s.All)
}

// Trimmed returns how many salaried records fell outside the fences.
func (s *Snapshot) Trimmed() int {
	return len(outlier.Column(s.All)) - len(s.Processed)
}
