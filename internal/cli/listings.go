package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/jobdash/internal/dashboard"
	"github.com/roach88/jobdash/internal/taxonomy"
)

// ListingsOptions holds flags for the listings command.
type ListingsOptions struct {
	*RootOptions
	Category string
	Location string
	Limit    int
}

// ListingsResult is the JSON payload of the listings command.
type ListingsResult struct {
	Filter   dashboard.Filter `json:"filter"`
	Total    int              `json:"total"`
	Listings any              `json:"listings"`
}

// NewListingsCommand creates the listings command.
func NewListingsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListingsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "listings",
		Short: "Show the listings table",
		Long: `Print the listings that match a category and location, with the
total match count.

Examples:
  jobdash listings --category "Senior Data Analysts"
  jobdash listings --location "Austin, TX" --limit 20`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListings(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "level or domain label")
	cmd.Flags().StringVar(&opts.Location, "location", "", "exact location")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 50, "maximum listings to show (0 = all)")

	return cmd
}

func runListings(opts *ListingsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	session, err := openSession(commandContext(cmd.Context()), opts.RootOptions, slog.Default())
	if err != nil {
		return formatter.Fail(ExitCommandError, "", err)
	}

	filter := dashboard.Filter{Category: taxonomy.Label(opts.Category), Location: opts.Location}
	records := session.Dashboard.Listings(filter)
	total := len(records)
	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}

	if opts.Format == "json" {
		return formatter.Success(ListingsResult{Filter: filter, Total: total, Listings: records})
	}
	if err := formatter.Success(records); err != nil {
		return err
	}
	if total > len(records) {
		fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d listings\n", len(records), total)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d listing(s)\n", total)
	}
	return nil
}
