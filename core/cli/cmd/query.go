package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wanderdata/wanderdata/core/cli/internal"
	"github.com/wanderdata/wanderdata/core/infrastructure/di"
	"github.com/wanderdata/wanderdata/core/logger"
)

// countsQuery is the pseudo-name that runs all five count queries
const countsQuery = "counts"

type queryOptions struct {
	root   *rootOptions
	params []string
	seed   bool
}

func newQueryCmd(root *rootOptions) *cobra.Command {
	opts := &queryOptions{root: root}
	cmd := &cobra.Command{
		Use:   "query <name>",
		Short: "Run one catalog query against the store and print its records",
		Example: `  wanderdata query booking_item --param status=CANCELLED
  wanderdata query counts --seed`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringArrayVar(&opts.params, "param", nil, "Query parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&opts.seed, "seed", false, "Run against the built-in sample dataset")
	return cmd
}

func (o *queryOptions) run(ctx context.Context, name string) (any, error) {
	params, err := internal.ParseParams(o.params)
	if err != nil {
		return nil, err
	}
	cfg, err := o.root.loadConfig()
	if err != nil {
		return nil, err
	}

	container, err := di.NewContainer(ctx, cfg, di.Options{Seed: o.seed})
	if err != nil {
		return nil, logger.WithTag("di", err)
	}
	defer container.Close()

	var result any
	if name == countsQuery {
		result, err = container.Service.Counts(ctx)
	} else {
		result, err = container.Service.List(ctx, name, params)
	}
	if err != nil {
		return nil, logger.WithTag("query", err)
	}
	return result, nil
}
