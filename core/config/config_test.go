package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderdata/wanderdata/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Connector)
	assert.Equal(t, DefaultConnectionString, cfg.Database.ConnectionString)
	assert.Equal(t, map[string]string{"search_path": "travel"}, cfg.Database.Options)

	adapter, err := cfg.Adapter()
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectorPostgres, adapter.Connector)
	assert.Equal(t, AdapterName, adapter.Name)
}

func TestParse_OverridesAndEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "s3cret")
	cfg, err := Parse([]byte(`
server:
  port: "9090"
  log_level: 4
database:
  connector: pq
  connection_string: "postgresql://app:{{ env.DB_PASSWORD }}@db:5432/traveltech"
  query_timeout: 5s
rate_limit:
  redis_url: redis://localhost:6379/0
  requests: 20
  window: 30s
`))
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Server.LogLevel)
	assert.Equal(t, "pq", cfg.Database.Connector)
	assert.Equal(t, "postgresql://app:s3cret@db:5432/traveltech", cfg.Database.ConnectionString)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 20, cfg.RateLimit.Requests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	// unspecified keys keep their defaults
	assert.Equal(t, map[string]string{"search_path": "travel"}, cfg.Database.Options)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown connector", content: "database:\n  connector: mysql\n"},
		{name: "missing env var", content: "database:\n  connection_string: \"{{ env.WANDERDATA_TEST_UNSET }}\"\n"},
		{name: "bad port", content: "server:\n  port: http\n"},
		{name: "bad log level", content: "server:\n  log_level: 9\n"},
		{name: "malformed yaml", content: "server: [\n"},
		{name: "empty connection string", content: "database:\n  connection_string: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestParse_DuckDBWithoutConnectionString(t *testing.T) {
	cfg, err := Parse([]byte("database:\n  connector: duckdb\n  connection_string: \"\"\n"))
	require.NoError(t, err)
	adapter, err := cfg.Adapter()
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectorDuckDB, adapter.Connector)
	assert.Empty(t, adapter.ConnectionString)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wanderdata.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"7000\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "8181")
	t.Setenv("WANDERDATA_DATABASE_URL", "postgresql://other/db")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8181", cfg.Server.Port)
	assert.Equal(t, "postgresql://other/db", cfg.Database.ConnectionString)
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("WD_HOST", "db")
	got, err := SubstituteEnvVars("postgresql://{{ env.WD_HOST }}:5432/{{env.WD_HOST}}")
	require.NoError(t, err)
	assert.Equal(t, "postgresql://db:5432/db", got)

	got, err = SubstituteEnvVars("no placeholders")
	require.NoError(t, err)
	assert.Equal(t, "no placeholders", got)
}
