package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Config   string // config file; empty looks for jobdash.yaml
	Source   string // overrides config source
	Taxonomy string // overrides config taxonomy
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the jobdash CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "jobdash",
		Short: "jobdash - job listings dashboard",
		Long: `Query the aggregates behind the job listings dashboard.

Listings are read from a CSV file, a CSV URL or a SQLite database,
classified by level and domain, and summarized into the series each
dashboard panel draws.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			// Logs go to stderr so JSON on stdout stays parseable.
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (default ./jobdash.yaml if present)")
	cmd.PersistentFlags().StringVar(&opts.Source, "source", "", "listings source: CSV path, http(s) URL or sqlite:<path>")
	cmd.PersistentFlags().StringVar(&opts.Taxonomy, "taxonomy", "", "taxonomy file (.yaml or .cue); built-in tables if empty")

	// Add subcommands
	cmd.AddCommand(NewSummaryCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewListingsCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
