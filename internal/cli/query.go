package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/jobdash/internal/dashboard"
	"github.com/roach88/jobdash/internal/listing"
	"github.com/roach88/jobdash/internal/taxonomy"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Field    string
	Category string
	Location string
	Limit    int
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <name>",
		Short: "Run a named dashboard query",
		Long: fmt.Sprintf(`Run one dashboard query and print its result.

Queries: %s

Examples:
  jobdash query categories --field level
  jobdash query categories --field domain --category "Data Engineers"
  jobdash query histogram --field level --format json
  jobdash query skills --category "Junior Data Analysts"`, strings.Join(dashboard.Queries(), ", ")),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Field, "field", string(listing.FieldLevel), "category field (level|domain|category)")
	cmd.Flags().StringVar(&opts.Category, "category", "", "selected category label")
	cmd.Flags().StringVar(&opts.Location, "location", "", "exact location filter")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum listings to return (0 = all)")

	return cmd
}

func runQuery(opts *QueryOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	field, err := listing.ParseField(opts.Field)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeQuery, err)
	}
	if !isQuery(name) {
		return formatter.Fail(ExitCommandError, ErrCodeQuery,
			fmt.Errorf("%w: %q (want one of %s)", dashboard.ErrUnknownQuery, name, strings.Join(dashboard.Queries(), ", ")))
	}

	session, err := openSession(commandContext(cmd.Context()), opts.RootOptions, slog.Default())
	if err != nil {
		return formatter.Fail(ExitCommandError, "", err)
	}

	args := dashboard.Args{
		Field:    field,
		Category: taxonomy.Label(opts.Category),
		Location: opts.Location,
		Limit:    opts.Limit,
	}
	formatter.VerboseLog("query %s %+v against snapshot %s", name, args, session.Snapshot.ID)

	result, err := session.Dashboard.Run(name, args)
	if err != nil {
		code := ErrCodeQuery
		if errors.Is(err, dashboard.ErrNoSkills) {
			code = ErrCodeSkills
		}
		return formatter.Fail(ExitCommandError, code, err)
	}
	return formatter.Success(result)
}

func isQuery(name string) bool {
	for _, q := range dashboard.Queries() {
		if q == name {
			return true
		}
	}
	return false
}
