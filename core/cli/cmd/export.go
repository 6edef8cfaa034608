package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wanderdata/wanderdata/core/application/export"
	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/infrastructure/connectors"
	"github.com/wanderdata/wanderdata/core/infrastructure/di"
	"github.com/wanderdata/wanderdata/core/logger"
)

type exportOptions struct {
	root   *rootOptions
	dir    string
	format string
	seed   bool
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{root: root}
	cmd := &cobra.Command{
		Use:   "export [resource...]",
		Short: "Write bulk export files for the catalog resources",
		Long: `Write one CSV or Parquet file per resource, holding the records the
resource endpoint returns with default parameters. Without arguments every
resource is exported.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := opts.run(cmd.Context(), args)
			if err != nil {
				return logger.WithTag("export", err)
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "bulk", "Output directory")
	cmd.Flags().StringVar(&opts.format, "format", export.FormatCSV, "csv or parquet")
	cmd.Flags().BoolVar(&opts.seed, "seed", false, "Export the built-in sample dataset")
	return cmd
}

func (o *exportOptions) run(ctx context.Context, resources []string) ([]string, error) {
	cfg, err := o.root.loadConfig()
	if err != nil {
		return nil, err
	}
	container, err := di.NewContainer(ctx, cfg, di.Options{Seed: o.seed})
	if err != nil {
		return nil, err
	}
	defer container.Close()

	var exportOpts []export.Option
	if strings.EqualFold(o.format, export.FormatParquet) {
		// scratch database that turns CSV files into Parquet
		converter, err := connectors.NewDuckDBConnector(ctx, &domain.Adapter{Name: "export", Connector: domain.ConnectorDuckDB})
		if err != nil {
			return nil, err
		}
		defer converter.Close()
		exportOpts = append(exportOpts, export.WithConverter(converter))
	}

	exp, err := export.New(container.Service, o.dir, o.format, exportOpts...)
	if err != nil {
		return nil, err
	}

	if len(resources) == 0 {
		paths, err := exp.ExportAll(ctx)
		if err != nil {
			return nil, err
		}
		logger.New("export").Successf("Exported %d resources to %s", len(paths), o.dir)
		return paths, nil
	}

	paths := make([]string, 0, len(resources))
	for _, name := range resources {
		path, err := exp.Export(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
