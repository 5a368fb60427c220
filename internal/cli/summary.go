package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Build the snapshot and describe it",
		Long: `Load the listings source, build the snapshot and print its size,
the number of listings with a salary and the outlier fences.

Examples:
  jobdash summary --source ./data/listings.csv
  jobdash summary --source sqlite:./data/listings.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(rootOpts, cmd)
		},
	}
}

func runSummary(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	session, err := openSession(commandContext(cmd.Context()), opts, slog.Default())
	if err != nil {
		return formatter.Fail(ExitCommandError, "", err)
	}
	formatter.VerboseLog("digest %s", session.Snapshot.Digest)

	return formatter.Success(session.Dashboard.Summary())
}
