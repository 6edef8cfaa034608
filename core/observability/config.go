package observability

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Enabled           bool    `yaml:"enabled"`
	ServiceName       string  `yaml:"service_name"`
	ServiceVersion    string  `yaml:"service_version"`
	Environment       string  `yaml:"environment"`
	OTLPEndpoint      string  `yaml:"otlp_endpoint"`
	TraceSamplingRate float64 `yaml:"trace_sampling_ratio"`
}

// DefaultConfig returns tracing disabled with local collector defaults
func DefaultConfig() Config {
	return Config{
		Enabled:           false,
		ServiceName:       "wanderdata",
		ServiceVersion:    "dev",
		Environment:       "development",
		OTLPEndpoint:      "localhost:4317",
		TraceSamplingRate: 1.0,
	}
}

// ResolveConfig applies WANDERDATA_OTEL_* environment overrides on top of
// base and clamps the sampling ratio into [0, 1].
func ResolveConfig(base Config) Config {
	cfg := base
	defaults := DefaultConfig()
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaults.ServiceName
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = defaults.ServiceVersion
	}
	if cfg.Environment == "" {
		cfg.Environment = defaults.Environment
	}
	if cfg.OTLPEndpoint == "" {
		cfg.OTLPEndpoint = defaults.OTLPEndpoint
	}

	overrideBool("WANDERDATA_OTEL_ENABLED", &cfg.Enabled)
	overrideString("WANDERDATA_OTEL_SERVICE_NAME", &cfg.ServiceName)
	overrideString("WANDERDATA_OTEL_SERVICE_VERSION", &cfg.ServiceVersion)
	overrideString("WANDERDATA_OTEL_ENVIRONMENT", &cfg.Environment)
	overrideString("WANDERDATA_OTEL_ENDPOINT", &cfg.OTLPEndpoint)
	overrideFloat("WANDERDATA_OTEL_TRACE_SAMPLING_RATIO", &cfg.TraceSamplingRate)

	if cfg.TraceSamplingRate < 0 {
		cfg.TraceSamplingRate = 0
	}
	if cfg.TraceSamplingRate > 1 {
		cfg.TraceSamplingRate = 1
	}
	cfg.Environment = strings.ToLower(cfg.Environment)
	return cfg
}

func overrideString(name string, target *string) {
	if value := os.Getenv(name); value != "" {
		*target = value
	}
}

func overrideBool(name string, target *bool) {
	value := os.Getenv(name)
	if value == "" {
		return
	}
	parsed, err := strconv.ParseBool(value)
	if err == nil {
		*target = parsed
	}
}

func overrideFloat(name string, target *float64) {
	value := os.Getenv(name)
	if value == "" {
		return
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err == nil {
		*target = parsed
	}
}
