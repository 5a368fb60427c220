package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/jobdash/internal/pipeline"
	"github.com/roach88/jobdash/internal/source"
	"github.com/roach88/jobdash/internal/taxonomy"
)

// ValidationIssue is one problem found by validate.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TaxonomyInfo counts the labels of each table.
type TaxonomyInfo struct {
	Level  int `json:"level"`
	Domain int `json:"domain"`
}

// SkillsInfo is the skills exhaustiveness report.
type SkillsInfo struct {
	Tables  int              `json:"tables"`
	Missing []taxonomy.Label `json:"missing,omitempty"`
	Orphans []taxonomy.Label `json:"orphans,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool              `json:"valid"`
	Taxonomy  *TaxonomyInfo     `json:"taxonomy,omitempty"`
	Skills    *SkillsInfo       `json:"skills,omitempty"`
	Records   int               `json:"records,omitempty"`
	Unmatched int               `json:"unmatched,omitempty"` // records neither table classified
	Errors    []ValidationIssue `json:"errors,omitempty"`
}

func (r *ValidationResult) fail(err error) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationIssue{Code: loadCode(err), Message: errorMessage(err)})
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check config, taxonomy, skills tables and source",
		Long: `Check that the configuration loads, the taxonomy tables are
well-formed and disjoint, every skills table belongs to a taxonomy label and,
when a source is configured, that it loads and builds.

Taxonomy labels without a skills table are listed but are not an error.

Exit codes:
  0 - Everything is valid
  1 - One or more problems found`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx := commandContext(cmd.Context())
	result := ValidationResult{Valid: true}

	cfg, err := loadConfig(opts)
	if err != nil {
		result.fail(err)
		return outputValidation(formatter, result)
	}

	set, err := loadTaxonomy(cfg.Taxonomy)
	if err != nil {
		result.fail(err)
		return outputValidation(formatter, result)
	}
	result.Taxonomy = &TaxonomyInfo{Level: len(set.Level.Entries), Domain: len(set.Domain.Entries)}
	formatter.VerboseLog("taxonomy: %d level, %d domain labels", result.Taxonomy.Level, result.Taxonomy.Domain)

	catalog, report, err := loadSkills(ctx, cfg, set)
	if catalog != nil {
		result.Skills = &SkillsInfo{Tables: len(catalog.Labels()), Missing: report.Missing, Orphans: report.Orphans}
	}
	if err != nil {
		result.fail(err)
	}

	if cfg.Source == "" {
		formatter.VerboseLog("no source configured; skipping listings check")
		return outputValidation(formatter, result)
	}

	raw, err := source.Load(ctx, cfg.Source, source.Options{Timeout: cfg.Timeout(), Logger: slog.Default()})
	if err != nil {
		result.fail(&LoadError{Code: ErrCodeSource, Message: "loading listings", Err: err})
		return outputValidation(formatter, result)
	}
	classifiers, err := taxonomy.Compile(set)
	if err != nil {
		result.fail(&LoadError{Code: ErrCodeTaxonomy, Message: "compiling taxonomy", Err: err})
		return outputValidation(formatter, result)
	}
	snap, err := pipeline.Build(raw, pipeline.Options{Classifiers: classifiers, Logger: slog.Default()})
	if err != nil {
		result.fail(&LoadError{Code: ErrCodeBuild, Message: "building snapshot", Err: err})
		return outputValidation(formatter, result)
	}

	result.Records = snap.Len()
	for _, r := range snap.All {
		if r.Category() == "" {
			result.Unmatched++
		}
	}
	return outputValidation(formatter, result)
}

func outputValidation(f *OutputFormatter, result ValidationResult) error {
	if f.Format == "json" {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		renderValidation(f, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
	}
	return nil
}

func renderValidation(f *OutputFormatter, r ValidationResult) {
	w := f.Writer
	if r.Taxonomy != nil {
		fmt.Fprintf(w, "✓ taxonomy: %d level, %d domain labels\n", r.Taxonomy.Level, r.Taxonomy.Domain)
	}
	if r.Skills != nil {
		mark := "✓"
		if len(r.Skills.Orphans) > 0 {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s skills: %d categories with tables\n", mark, r.Skills.Tables)
		if len(r.Skills.Missing) > 0 && r.Skills.Tables > 0 {
			fmt.Fprintf(w, "  no table for: %s\n", joinLabels(r.Skills.Missing))
		}
	}
	if r.Records > 0 {
		fmt.Fprintf(w, "✓ source: %d listings, %d unclassified\n", r.Records, r.Unmatched)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "✗ [%s] %s\n", e.Code, e.Message)
	}
	if r.Valid {
		fmt.Fprintln(w, "All checks passed")
	}
}

func joinLabels(labels []taxonomy.Label) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}

