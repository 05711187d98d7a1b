package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://api.data.gov.in/resource", cfg.Fetcher.BaseURL)
	assert.Equal(t, []string{"Andhra Pradesh", "Telangana"}, cfg.Fetcher.TargetStates)
	assert.Equal(t, "data.gov.in", cfg.Fetcher.SourceTag)
	assert.Equal(t, 2000, cfg.Fetcher.RecordLimit)
	assert.Equal(t, 60*time.Second, cfg.Fetcher.GetTimeout())
	assert.False(t, cfg.Fetcher.DailyRunEnabled)
	assert.Equal(t, "07:00", cfg.Fetcher.DailyRunTime)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 365, cfg.Cleanup.RetentionDays)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Fetcher.BaseURL, cfg.Fetcher.BaseURL)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	yaml := `
database:
  type: postgres
  postgres:
    host: db.internal
    port: 5432
    user: bazaar
    database: bazaarsetu
fetcher:
  record_limit: 500
  daily_run_enabled: true
  daily_run_time: "06:30"
rate_limit:
  enabled: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, 500, cfg.Fetcher.RecordLimit)
	assert.True(t, cfg.Fetcher.DailyRunEnabled)
	assert.Equal(t, "06:30", cfg.Fetcher.DailyRunTime)
	assert.False(t, cfg.RateLimit.Enabled)

	// Untouched sections keep their defaults.
	assert.Equal(t, "https://api.data.gov.in/resource", cfg.Fetcher.BaseURL)
	assert.Equal(t, 365, cfg.Cleanup.RetentionDays)
}

func TestLoadConfigAPIKeyFromEnv(t *testing.T) {
	t.Setenv("DATA_GOV_API_KEY", "env-key")

	yaml := `
fetcher:
  api_key: file-key
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Fetcher.APIKey)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetcher: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestResourceURL(t *testing.T) {
	cfg := FetcherConfig{BaseURL: "https://api.data.gov.in/resource", ResourceID: "abc-123"}
	assert.Equal(t, "https://api.data.gov.in/resource/abc-123", cfg.ResourceURL())
}
