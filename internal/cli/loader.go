package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/jobdash/internal/config"
	"github.com/roach88/jobdash/internal/dashboard"
	"github.com/roach88/jobdash/internal/pipeline"
	"github.com/roach88/jobdash/internal/skills"
	"github.com/roach88/jobdash/internal/source"
	"github.com/roach88/jobdash/internal/taxonomy"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric    = "E001" // Generic/unknown error
	ErrCodeConfig     = "E002" // Config file unreadable or invalid
	ErrCodeTaxonomy   = "E003" // Taxonomy unreadable or invalid
	ErrCodeSource     = "E004" // Listings source unreadable
	ErrCodeSkills     = "E005" // Skills table unreadable or orphaned
	ErrCodeBuild      = "E006" // Snapshot construction failed
	ErrCodeQuery      = "E007" // Unknown query or invalid query arguments
	ErrCodeNotFound   = "E008" // Path not found
	ErrCodeNoSource   = "E009" // No source configured
	ErrCodeValidation = "E100" // Validate found problems
)

// LoadError is a failure while assembling a session.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// loadCode returns the code of a LoadError, or ErrCodeGeneric.
func loadCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ErrCodeGeneric
}

// errorMessage is err's text without a LoadError's code prefix.
func errorMessage(err error) string {
	var le *LoadError
	if !errors.As(err, &le) {
		return err.Error()
	}
	if le.Err != nil {
		return fmt.Sprintf("%s: %v", le.Message, le.Err)
	}
	return le.Message
}

// Session is everything a command needs to answer queries.
type Session struct {
	Config    config.Config
	Taxonomy  taxonomy.Set
	Catalog   *skills.Catalog
	Report    skills.Report
	Snapshot  *pipeline.Snapshot
	Dashboard *dashboard.Dashboard
}

// loadConfig reads --config, or jobdash.yaml when present, and applies the
// --source and --taxonomy overrides.
func loadConfig(opts *RootOptions) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.Config != "" {
		cfg, err = config.Load(opts.Config)
	} else {
		cfg, err = config.LoadOptional(config.DefaultFile)
	}
	if err != nil {
		return config.Config{}, &LoadError{Code: ErrCodeConfig, Message: "loading config", Err: err}
	}

	if opts.Source != "" {
		cfg.Source = opts.Source
	}
	if opts.Taxonomy != "" {
		cfg.Taxonomy = opts.Taxonomy
	}
	return cfg, nil
}

func loadTaxonomy(path string) (taxonomy.Set, error) {
	var (
		set taxonomy.Set
		err error
	)
	if path == "" {
		set, err = taxonomy.Default()
	} else {
		set, err = taxonomy.LoadFile(path)
	}
	if err != nil {
		return taxonomy.Set{}, &LoadError{Code: ErrCodeTaxonomy, Message: "loading taxonomy", Err: err}
	}
	return set, nil
}

// loadSkills reads every configured skills file into one catalog and checks
// it against the taxonomy. Orphaned tables are an error.
func loadSkills(ctx context.Context, cfg config.Config, set taxonomy.Set) (*skills.Catalog, skills.Report, error) {
	catalog := skills.NewCatalog()
	for _, spec := range cfg.SkillSpecs() {
		tables, err := skills.Load(ctx, spec, source.Options{Timeout: cfg.Timeout()})
		if err != nil {
			return nil, skills.Report{}, &LoadError{Code: ErrCodeSkills, Message: "loading skills", Err: err}
		}
		for _, t := range tables {
			catalog.Add(t)
		}
	}

	report := catalog.Check(set)
	if err := report.Err(); err != nil {
		return catalog, report, &LoadError{Code: ErrCodeSkills, Message: "checking skills", Err: err}
	}
	return catalog, report, nil
}

// openSession loads config, taxonomy, skills and listings and builds the
// snapshot. Any failure aborts: no command runs against a partial snapshot.
func openSession(ctx context.Context, opts *RootOptions, logger *slog.Logger) (*Session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if cfg.Source == "" {
		return nil, &LoadError{Code: ErrCodeNoSource, Message: "no listings source: set source in jobdash.yaml or pass --source"}
	}

	set, err := loadTaxonomy(cfg.Taxonomy)
	if err != nil {
		return nil, err
	}
	classifiers, err := taxonomy.Compile(set)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeTaxonomy, Message: "compiling taxonomy", Err: err}
	}

	catalog, report, err := loadSkills(ctx, cfg, set)
	if err != nil {
		return nil, err
	}

	logger.Debug("loading listings", "source", cfg.Source)
	raw, err := source.Load(ctx, cfg.Source, source.Options{Timeout: cfg.Timeout(), Logger: logger})
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSource, Message: "loading listings", Err: err}
	}

	snap, err := pipeline.Build(raw, pipeline.Options{Classifiers: classifiers, Logger: logger})
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBuild, Message: "building snapshot", Err: err}
	}

	return &Session{
		Config:    cfg,
		Taxonomy:  set,
		Catalog:   catalog,
		Report:    report,
		Snapshot:  snap,
		Dashboard: dashboard.New(snap, catalog, cfg.Settings()),
	}, nil
}

// commandContext returns the command's context, or Background when run
// outside Execute.
func commandContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
