package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/jobdash/internal/harness"
)

// ErrCodeTestFailed marks a test run with at least one failing scenario.
const ErrCodeTestFailed = "E_TEST_FAILED"

// Golden file states reported per scenario.
const (
	goldenAbsent  = "absent"
	goldenMatched = "matched"
	goldenUpdated = "updated"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // rewrite golden files from this run
	Filter string // glob over scenario file names, without extension
}

// ScenarioResult is the outcome of one scenario file.
type ScenarioResult struct {
	Name     string   `json:"name"`
	File     string   `json:"file"`
	Pass     bool     `json:"pass"`
	Snapshot string   `json:"snapshot,omitempty"` // snapshot ID the queries ran against
	Golden   string   `json:"golden,omitempty"`   // absent, matched or updated
	Errors   []string `json:"errors,omitempty"`
}

// TestResult is the outcome of a whole run.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

func (r *TestResult) add(s ScenarioResult) {
	r.Scenarios = append(r.Scenarios, s)
	if s.Pass {
		r.Passed++
	} else {
		r.Failed++
	}
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run query scenarios",
		Long: `Run every scenario file in a directory.

Each scenario builds a snapshot from its own source, runs its queries and
checks their expectations. When golden/<scenario>.golden exists beside the
scenario file, the query outcomes must also match it byte for byte.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (missing directory, bad filter)

Examples:
  jobdash test ./scenarios
  jobdash test ./scenarios --filter "landing*"
  jobdash test ./scenarios --update
  jobdash test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "rewrite golden files from this run")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only run scenarios whose file name matches this glob")

	return cmd
}

func runTests(opts *TestOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := scenarioFiles(dir, opts.Filter)
	if err != nil {
		code := ErrCodeGeneric
		if errors.Is(err, fs.ErrNotExist) {
			code = ErrCodeNotFound
		}
		return formatter.Fail(ExitCommandError, code, err)
	}

	result := TestResult{Scenarios: make([]ScenarioResult, 0, len(files)), Total: len(files)}
	text := opts.Format != "json"
	if text && len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	for _, file := range files {
		sr := runScenario(cmd, file, opts.Update)
		if text {
			printScenario(cmd.OutOrStdout(), sr)
		}
		result.add(sr)
	}

	if !text {
		return outputTestJSON(formatter, result)
	}
	return outputTestText(cmd.OutOrStdout(), result)
}

// scenarioFiles lists .yaml and .yml files under dir in lexical order,
// skipping golden/ directories.
func scenarioFiles(dir, filter string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("scenarios directory: %w", err)
	}
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", filter, err)
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "golden" {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			// Pattern was checked above.
			if ok, _ := filepath.Match(filter, strings.TrimSuffix(d.Name(), ext)); !ok {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("finding scenarios: %w", err)
	}
	return files, nil
}

// runScenario loads, runs and, when a golden file exists or update is set,
// compares or rewrites one scenario.
func runScenario(cmd *cobra.Command, file string, update bool) ScenarioResult {
	sr := ScenarioResult{Name: filepath.Base(file), File: file}
	failed := func(msg string, args ...any) ScenarioResult {
		sr.Errors = append(sr.Errors, fmt.Sprintf(msg, args...))
		return sr
	}

	scenario, err := harness.LoadScenario(file)
	if err != nil {
		return failed("failed to load scenario: %v", err)
	}
	sr.Name = scenario.Name

	result, err := harness.Run(commandContext(cmd.Context()), scenario)
	if err != nil {
		return failed("execution failed: %v", err)
	}
	sr.Snapshot = result.SnapshotID
	sr.Errors = append(sr.Errors, result.Errors...)

	goldenPath := harness.GoldenPath(file)
	switch _, statErr := os.Stat(goldenPath); {
	case update:
		if err := harness.UpdateGolden(goldenPath, scenario.Name, result); err != nil {
			return failed("failed to update golden file: %v", err)
		}
		sr.Golden = goldenUpdated
	case statErr == nil:
		match, err := harness.CompareGolden(goldenPath, scenario.Name, result)
		if err != nil {
			return failed("golden comparison failed: %v", err)
		}
		if !match {
			return failed("outcomes do not match golden file (run with --update to regenerate)")
		}
		sr.Golden = goldenMatched
	default:
		sr.Golden = goldenAbsent
	}

	sr.Pass = result.Pass
	return sr
}

func printScenario(w io.Writer, sr ScenarioResult) {
	if !sr.Pass {
		fmt.Fprintf(w, "✗ %s\n", sr.Name)
		for _, e := range sr.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
		return
	}
	if sr.Golden == goldenUpdated {
		fmt.Fprintf(w, "✓ %s (golden updated)\n", sr.Name)
		return
	}
	fmt.Fprintf(w, "✓ %s\n", sr.Name)
}

func outputTestJSON(f *OutputFormatter, result TestResult) error {
	resp := CLIResponse{Status: "ok", Data: result}
	if result.Failed > 0 {
		resp.Status = "error"
		resp.Error = &CLIError{Code: ErrCodeTestFailed, Message: fmt.Sprintf("%d scenario(s) failed", result.Failed)}
	}
	if err := f.encode(resp); err != nil {
		return err
	}
	return testExit(result)
}

func outputTestText(w io.Writer, result TestResult) error {
	fmt.Fprintf(w, "\nTest Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	if err := testExit(result); err != nil {
		return err
	}
	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}

func testExit(result TestResult) error {
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}
