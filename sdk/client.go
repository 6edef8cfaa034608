// Package sdk is a Go client for the WanderData analytics API and its bulk
// exports. Records decode into the same types the server publishes.
package sdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"

	"github.com/wanderdata/wanderdata/core/catalog"
	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/logger"
	ctxutil "github.com/wanderdata/wanderdata/core/shared/context"
)

// Endpoint paths
const (
	HealthCheckEndpoint = "/"
	CountsEndpoint      = "/v0/counts/"
)

// maxErrorBody bounds how much of a failed response is kept in a RemoteCallError
const maxErrorBody = 1024

// Client calls the WanderData API
type Client struct {
	cfg        Config
	httpClient *http.Client
	bulkFiles  map[string]string
	log        logger.Logger
}

// New creates a Client from a validated config
func New(cfg Config) (*Client, error) {
	if cfg.BulkBaseURL == "" {
		cfg.BulkBaseURL = DefaultBulkBaseURL
	}
	if cfg.BulkFileFormat == "" {
		cfg.BulkFileFormat = FormatCSV
	}
	cfg.BulkFileFormat = strings.ToLower(cfg.BulkFileFormat)
	if cfg.BackoffMaxTime <= 0 {
		cfg.BackoffMaxTime = 30 * time.Second
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	bulkFiles := make(map[string]string, len(catalog.MustDefault().Resources()))
	for _, def := range catalog.MustDefault().Resources() {
		bulkFiles[def.Name] = BulkFileName(def.Name, cfg.BulkFileFormat)
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		bulkFiles:  bulkFiles,
		log:        logger.New("sdk"),
	}, nil
}

// BulkFileName is the export file name of a resource in format
func BulkFileName(resource, format string) string {
	ext := ".csv"
	if strings.EqualFold(format, FormatParquet) {
		ext = ".parquet"
	}
	return resource + "_data" + ext
}

// ResourceEndpoint is the API path of a catalog resource
func ResourceEndpoint(resource string) string {
	return "/v0/" + resource + "/"
}

// BulkResources lists the resources that have a bulk export
func (c *Client) BulkResources() []string {
	names := make([]string, 0, len(c.bulkFiles))
	for name := range c.bulkFiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// HealthCheck calls the root endpoint and returns its message
func (c *Client) HealthCheck(ctx context.Context) (string, error) {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.getJSON(ctx, HealthCheckEndpoint, nil, &body); err != nil {
		return "", err
	}
	return body.Message, nil
}

// GetCounts returns the entity counts
func (c *Client) GetCounts(ctx context.Context) (*domain.Counts, error) {
	var counts domain.Counts
	if err := c.getJSON(ctx, CountsEndpoint, nil, &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

// GetBulkFile downloads the export of resource in the configured format.
// Unknown resources fail before any request is made.
func (c *Client) GetBulkFile(ctx context.Context, resource string) ([]byte, error) {
	file, ok := c.bulkFiles[resource]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownResource, resource)
	}
	target := strings.TrimSuffix(c.cfg.BulkBaseURL, "/") + "/" + file

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteCallError{Method: http.MethodGet, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, remoteStatusError(req, resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteCallError{Method: http.MethodGet, URL: target, StatusCode: resp.StatusCode, Err: err}
	}
	return data, nil
}

// List fetches any resource and decodes it into out, which must be a
// pointer to a slice of the resource's record type
func (c *Client) List(ctx context.Context, resource string, params map[string]string, out any) error {
	return c.getJSON(ctx, ResourceEndpoint(resource), params, out)
}

func list[T any](ctx context.Context, c *Client, resource string, params map[string]string) ([]T, error) {
	var records []T
	if err := c.List(ctx, resource, params, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params map[string]string, out any) error {
	body, err := c.call(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

// call performs a GET against the API. With backoff enabled, transport
// failures and 5xx responses are retried until BackoffMaxTime elapses;
// every other status fails immediately.
func (c *Client) call(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	target, err := c.buildURL(endpoint, params)
	if err != nil {
		return nil, err
	}
	ctx, requestID := ctxutil.EnsureRequestID(ctx)

	var body []byte
	operation := func() error {
		data, err := c.do(ctx, target, requestID)
		if err != nil {
			if rerr, ok := err.(*RemoteCallError); ok && !rerr.Temporary() {
				return backoff.Permanent(err)
			}
			return err
		}
		body = data
		return nil
	}

	if !c.cfg.Backoff {
		err = operation()
		if perr, ok := err.(*backoff.PermanentError); ok {
			err = perr.Err
		}
	} else {
		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = c.cfg.BackoffMaxTime
		err = backoff.RetryNotify(operation, backoff.WithContext(b, ctx), func(err error, wait time.Duration) {
			c.log.Warnf("Retrying %s in %s: %v", endpoint, wait.Round(time.Millisecond), err)
		})
	}
	if err != nil {
		c.log.Errorf("Call to %s failed: %v", endpoint, err)
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, target, requestID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(ctxutil.RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteCallError{Method: req.Method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, remoteStatusError(req, resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteCallError{Method: req.Method, URL: target, StatusCode: resp.StatusCode, Err: err}
	}
	return data, nil
}

// buildURL joins endpoint onto the base URL and encodes the non-empty params
func (c *Client) buildURL(endpoint string, params map[string]string) (string, error) {
	base, err := url.Parse(strings.TrimSuffix(c.cfg.BaseURL, "/") + endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %s: %w", endpoint, err)
	}
	query := base.Query()
	for k, v := range params {
		if v == "" {
			continue
		}
		query.Set(k, v)
	}
	base.RawQuery = query.Encode()
	return base.String(), nil
}

func remoteStatusError(req *http.Request, resp *http.Response) *RemoteCallError {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &RemoteCallError{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(snippet)),
	}
}
