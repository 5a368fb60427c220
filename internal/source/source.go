package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/roach88/jobdash/internal/listing"
	"github.com/roach88/jobdash/internal/store"
)

// SQLitePrefix marks a source spec as a SQLite database path.
const SQLitePrefix = "sqlite:"

// DefaultTimeout bounds HTTP fetches when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Options configures Load.
type Options struct {
	Client  *http.Client  // nil uses a client with Timeout
	Timeout time.Duration // per-request timeout for HTTP sources
	Logger  *slog.Logger  // nil uses slog.Default()
}

// Kind reports which loader a spec dispatches to: "sqlite", "http" or "csv".
func Kind(spec string) string {
	switch {
	case strings.HasPrefix(spec, SQLitePrefix):
		return "sqlite"
	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		return "http"
	default:
		return "csv"
	}
}

// Load reads every raw record from spec.
func Load(ctx context.Context, spec string, opts Options) ([]listing.RawRecord, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	spec = strings.TrimSpace(spec)
	if spec == "" || spec == SQLitePrefix {
		return nil, &LoadError{Code: ErrCodeSpec, Message: "no source configured"}
	}

	var (
		records []listing.RawRecord
		err     error
	)
	kind := Kind(spec)
	switch kind {
	case "sqlite":
		records, err = loadSQLite(ctx, strings.TrimPrefix(spec, SQLitePrefix))
	default:
		records, err = loadCSV(ctx, spec, opts)
	}
	if err != nil {
		return nil, withSource(err, spec)
	}
	if len(records) == 0 {
		return nil, &LoadError{Code: ErrCodeEmpty, Source: spec, Message: "source has no records"}
	}

	logger.Debug("source loaded", "source", spec, "kind", kind, "records", len(records))
	return records, nil
}

func loadCSV(ctx context.Context, spec string, opts Options) ([]listing.RawRecord, error) {
	rc, err := Open(ctx, spec, opts)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	t, err := ReadTable(rc)
	if err != nil {
		return nil, err
	}
	return Records(t)
}

// Open returns a reader over a local path or an http(s) URL. Skill tables
// use it too.
func Open(ctx context.Context, spec string, opts Options) (io.ReadCloser, error) {
	if Kind(spec) != "http" {
		f, err := os.Open(spec)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeOpen, Source: spec, Message: "opening file", Err: err}
		}
		return f, nil
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, spec, nil)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSpec, Source: spec, Message: "building request", Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeFetch, Source: spec, Message: "fetching source", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &LoadError{
			Code:    ErrCodeFetch,
			Source:  spec,
			Message: fmt.Sprintf("unexpected HTTP status %s", resp.Status),
		}
	}
	return resp.Body, nil
}

func loadSQLite(ctx context.Context, path string) ([]listing.RawRecord, error) {
	s, err := store.OpenReadOnly(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDatabase, Message: "opening database", Err: err}
	}
	defer s.Close()

	records, err := s.ReadListings(ctx)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDatabase, Message: "reading listings", Err: err}
	}
	return records, nil
}

// withSource fills in the source spec on a LoadError that lacks one.
func withSource(err error, spec string) error {
	var le *LoadError
	if errors.As(err, &le) && le.Source == "" {
		le.Source = spec
	}
	return err
}
