package sdk

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Bulk file formats
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// DefaultBulkBaseURL is the published location of the bulk exports
const DefaultBulkBaseURL = "https://raw.githubusercontent.com/wanderdata/wanderdata/main/bulk/"

// Config configures a Client
type Config struct {
	BaseURL        string        `validate:"required,url"`
	Backoff        bool
	BackoffMaxTime time.Duration `validate:"min=0"`
	BulkFileFormat string        `validate:"oneof=csv parquet"`
	BulkBaseURL    string        `validate:"required,url"`
	// HTTPClient defaults to a client with a 30 second timeout
	HTTPClient *http.Client `validate:"-"`
}

var validate = validator.New()

// DefaultConfig returns a config for baseURL with retries enabled
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		Backoff:        true,
		BackoffMaxTime: 30 * time.Second,
		BulkFileFormat: FormatCSV,
		BulkBaseURL:    DefaultBulkBaseURL,
	}
}

// ConfigFromEnv reads WANDERDATA_API_BASE_URL, WANDERDATA_BACKOFF,
// WANDERDATA_BACKOFF_MAX_TIME (seconds or a Go duration),
// WANDERDATA_BULK_FILE_FORMAT and WANDERDATA_BULK_BASE_URL
func ConfigFromEnv() (Config, error) {
	return OverlayEnv(DefaultConfig(""))
}

// OverlayEnv applies the variables read by ConfigFromEnv on top of cfg and
// validates the result. Unset variables keep the value in cfg.
func OverlayEnv(cfg Config) (Config, error) {
	if v := os.Getenv("WANDERDATA_API_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("WANDERDATA_BACKOFF"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("WANDERDATA_BACKOFF: %w", err)
		}
		cfg.Backoff = b
	}
	if v := os.Getenv("WANDERDATA_BACKOFF_MAX_TIME"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("WANDERDATA_BACKOFF_MAX_TIME: %w", err)
		}
		cfg.BackoffMaxTime = d
	}
	if v := os.Getenv("WANDERDATA_BULK_FILE_FORMAT"); v != "" {
		cfg.BulkFileFormat = strings.ToLower(v)
	}
	if v := os.Getenv("WANDERDATA_BULK_BASE_URL"); v != "" {
		cfg.BulkBaseURL = v
	}

	return cfg, cfg.Validate()
}

// Validate checks field constraints
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid sdk config: %w", err)
	}
	return nil
}

func parseSeconds(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
