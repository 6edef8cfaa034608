package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/infrastructure/connectors"
	"github.com/wanderdata/wanderdata/core/logger"
	"github.com/wanderdata/wanderdata/sdk"
)

type bulkOptions struct {
	output  string
	format  string
	preview int
}

func newBulkCmd() *cobra.Command {
	opts := &bulkOptions{}
	cmd := &cobra.Command{
		Use:   "bulk <resource>",
		Short: "Download the bulk export of a resource",
		Long: `Download the bulk export of a resource as CSV or Parquet.
With --preview the file is opened with an in-memory DuckDB database and
its first rows are printed as JSON.`,
		Example: `  wanderdata bulk events -o events.csv
  wanderdata bulk flight_overview --format parquet --preview 5`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New("bulk")
			client, err := newSDKClient("", opts.format, false)
			if err != nil {
				return logger.WithTag("sdk", err)
			}

			data, err := client.GetBulkFile(cmd.Context(), args[0])
			if err != nil {
				return logger.WithTag("sdk", err)
			}

			path := opts.output
			if path == "" {
				path = sdk.BulkFileName(args[0], formatOrDefault(opts.format))
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return logger.Tagf("bulk", "write %s: %w", path, err)
			}
			log.Successf("Saved %d bytes to %s", len(data), path)

			if opts.preview <= 0 {
				return nil
			}
			rows, err := previewFile(cmd.Context(), path, formatOrDefault(opts.format), opts.preview)
			if err != nil {
				return logger.WithTag("bulk", err)
			}
			return writeJSON(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Destination file (default <resource>_data.<format>)")
	cmd.Flags().StringVar(&opts.format, "format", "", "csv or parquet (overrides WANDERDATA_BULK_FILE_FORMAT)")
	cmd.Flags().IntVar(&opts.preview, "preview", 0, "Print the first N rows of the downloaded file")
	return cmd
}

func formatOrDefault(format string) string {
	if format == "" {
		if env := os.Getenv("WANDERDATA_BULK_FILE_FORMAT"); env != "" {
			return strings.ToLower(env)
		}
		return sdk.FormatCSV
	}
	return strings.ToLower(format)
}

// previewFile reads the first limit rows of a CSV or Parquet file through DuckDB
func previewFile(ctx context.Context, path, format string, limit int) ([]map[string]any, error) {
	conn, err := connectors.NewDuckDBConnector(ctx, &domain.Adapter{Name: "preview", Connector: domain.ConnectorDuckDB})
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	reader := "read_csv_auto"
	if format == sdk.FormatParquet {
		reader = "read_parquet"
	}
	statement := fmt.Sprintf("SELECT * FROM %s(%s) LIMIT %d", reader, quoteLiteral(path), limit)

	rows, err := conn.Execute(ctx, statement, nil)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", path, err)
	}
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Map())
	}
	return out, nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
