package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/jobdash/internal/source"
	"github.com/roach88/jobdash/internal/taxonomy"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // command succeeded
	ExitFailure      = 1 // validate found problems or a scenario failed
	ExitCommandError = 2 // the command could not run: bad config, unreadable source, unknown query
)

// ExitError carries an exit code out of a command. Commands print their own
// error output before returning one, so main only sets the exit status.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError returns an ExitError with no underlying cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// GetExitCode maps err to a process exit status: nil is ExitSuccess, an
// ExitError anywhere in the chain gives its code, anything else ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// CLIResponse is the JSON envelope every command prints in json format.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error half of CLIResponse.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OutputFormatter writes command results as text or as a CLIResponse.
// Results go to Writer; verbose diagnostics go to ErrWriter when it is set.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

func newFormatter(opts *RootOptions, w, errW io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    w,
		ErrWriter: errW,
		Verbose:   opts.Verbose,
	}
}

// Success prints a query result.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	return renderText(f.Writer, data)
}

// Error prints one error. Text output shows details only when verbose.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns an ExitError carrying exitCode. An empty code
// takes the code of a *LoadError, or ErrCodeGeneric.
func (f *OutputFormatter) Fail(exitCode int, code string, err error) error {
	if code == "" {
		code = loadCode(err)
	}
	if outErr := f.Error(code, errorMessage(err), errorDetails(err)); outErr != nil {
		return outErr
	}
	return &ExitError{Code: exitCode, Message: code, Err: err}
}

// VerboseLog prints a diagnostic line when verbose is on.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// encode writes one JSON document. Band labels such as "<50k" stay readable.
func (f *OutputFormatter) encode(v any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// errorDetails pulls the location of a source or taxonomy failure out of
// err. It returns nil when err carries none.
func errorDetails(err error) any {
	var se *source.LoadError
	if errors.As(err, &se) {
		return map[string]any{"source": se.Source, "cause": se.Code}
	}
	var te *taxonomy.LoadError
	if errors.As(err, &te) {
		d := map[string]any{"cause": te.Code}
		if te.Path != "" {
			d["path"] = te.Path
		}
		if te.Line > 0 {
			d["line"] = te.Line
		}
		return d
	}
	return nil
}
