package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderdata/wanderdata/core/config"
	"github.com/wanderdata/wanderdata/core/logger"
)

func TestResolvePort(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = "9000"

	t.Setenv("PORT", "7000")
	assert.Equal(t, "1234", ResolvePort("1234", cfg))
	assert.Equal(t, "9000", ResolvePort("", cfg))
	assert.Equal(t, "7000", ResolvePort("", nil))

	t.Setenv("PORT", "")
	assert.Equal(t, "8080", ResolvePort("", nil))
}

func TestResolveLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.LogLevel = logger.LogLevelWarn

	tests := []struct {
		name     string
		verbose  bool
		cli      int
		cfg      *config.Config
		expected int
	}{
		{name: "verbose wins", verbose: true, cli: 1, cfg: cfg, expected: logger.LogLevelDebug},
		{name: "flag over file", cli: logger.LogLevelError, cfg: cfg, expected: logger.LogLevelError},
		{name: "file", cfg: cfg, expected: logger.LogLevelWarn},
		{name: "default", expected: logger.LogLevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveLogLevel(tt.verbose, tt.cli, tt.cfg))
		})
	}
}

func TestResolveBaseURL(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "http://localhost:8080", ResolveBaseURL(cfg, "8080"))

	cfg.Server.BaseURL = "https://api.wanderdata.dev/"
	assert.Equal(t, "https://api.wanderdata.dev", ResolveBaseURL(cfg, "8080"))
}

func TestParseParams(t *testing.T) {
	params, err := ParseParams([]string{"status=CANCELLED", "limit=5", "status=TICKETED", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "TICKETED", "limit": "5", "empty": ""}, params)

	for _, bad := range []string{"status", "=x"} {
		_, err := ParseParams([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("WANDERDATA_DATABASE_CONNECTOR", "")
	t.Setenv("WANDERDATA_DATABASE_URL", "")
	t.Setenv("WANDERDATA_REDIS_URL", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "wanderdata.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9100\"\ndatabase:\n  connector: duckdb\n  connection_string: \"\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "duckdb", cfg.Database.Connector)

	_, err = LoadConfig(filepath.Join(dir, "wanderdata.toml"))
	assert.Error(t, err)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConnectionString, cfg.Database.ConnectionString)
}
