package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wanderdata/wanderdata/core/logger"
	"github.com/wanderdata/wanderdata/sdk"
)

// defaultAPIURL is used when neither --base-url nor WANDERDATA_API_BASE_URL is set
const defaultAPIURL = "http://localhost:8080"

type clientOptions struct {
	baseURL   string
	status    string
	limit     int
	noBackoff bool
}

func newClientCmd() *cobra.Command {
	opts := &clientOptions{}
	cmd := &cobra.Command{
		Use:   "client <resource|health|counts>",
		Short: "Call a running API through the Go SDK",
		Example: `  wanderdata client health
  wanderdata client booking_item --status CANCELLED --base-url http://localhost:8080`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.run(cmd.Context(), args[0])
			if err != nil {
				return logger.WithTag("sdk", err)
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "API base URL (overrides WANDERDATA_API_BASE_URL)")
	cmd.Flags().StringVar(&opts.status, "status", "", "Booking status filter")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Forwarded as the limit query parameter")
	cmd.Flags().BoolVar(&opts.noBackoff, "no-backoff", false, "Fail on the first transient error instead of retrying")
	return cmd
}

func (o *clientOptions) run(ctx context.Context, target string) (any, error) {
	client, err := newSDKClient(o.baseURL, "", o.noBackoff)
	if err != nil {
		return nil, err
	}

	switch target {
	case "health":
		msg, err := client.HealthCheck(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]string{"message": msg}, nil
	case countsQuery:
		return client.GetCounts(ctx)
	}

	params := map[string]string{"status": o.status}
	if o.limit > 0 {
		params["limit"] = strconv.Itoa(o.limit)
	}
	var records []map[string]any
	if err := client.List(ctx, target, params, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []map[string]any{}
	}
	return records, nil
}

// newSDKClient builds a client from the environment, then applies the
// non-empty flag values on top
func newSDKClient(baseURL, format string, noBackoff bool) (*sdk.Client, error) {
	cfg, err := sdk.OverlayEnv(sdk.DefaultConfig(defaultAPIURL))
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if format != "" {
		cfg.BulkFileFormat = format
	}
	if noBackoff {
		cfg.Backoff = false
	}
	return sdk.New(cfg)
}
