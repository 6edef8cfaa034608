package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wanderdata/wanderdata/core/config"
	"github.com/wanderdata/wanderdata/core/logger"
)

// LoadConfig loads the server configuration. An empty path uses the
// defaults overlaid with the environment.
func LoadConfig(filePath string) (*config.Config, error) {
	if filePath != "" {
		ext := strings.ToLower(filepath.Ext(filePath))
		if ext != ".yaml" && ext != ".yml" {
			return nil, fmt.Errorf("config error: %s is not a YAML file", filePath)
		}
	}
	return config.Load(filePath)
}

// ResolvePort resolves the port from CLI flag, config file, env var, or default
func ResolvePort(cliPort string, cfg *config.Config) string {
	if cliPort != "" {
		return cliPort
	}
	if cfg != nil && cfg.Server.Port != "" {
		return cfg.Server.Port
	}
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8080"
}

// ResolveLogLevel resolves the log level from verbose flag, CLI flag, config file, or default
func ResolveLogLevel(verbose bool, cliLogLevel int, cfg *config.Config) int {
	if verbose {
		return logger.LogLevelDebug
	}
	if cliLogLevel > 0 {
		return cliLogLevel
	}
	if cfg != nil && cfg.Server.LogLevel > 0 {
		return cfg.Server.LogLevel
	}
	return logger.LogLevelInfo
}

// ResolveBaseURL is the public URL advertised in the API docs
func ResolveBaseURL(cfg *config.Config, port string) string {
	if cfg != nil && cfg.Server.BaseURL != "" {
		return strings.TrimSuffix(cfg.Server.BaseURL, "/")
	}
	return "http://localhost:" + port
}

// ParseParams turns repeated key=value flags into a parameter map. Later
// occurrences of a key win.
func ParseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}
