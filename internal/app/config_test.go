package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, 90, cfg.Audit.RetentionDays)
	require.Equal(t, "@daily", cfg.Audit.CleanupSchedule)
	require.Equal(t, 500*time.Millisecond, cfg.Validation.Debounce)
	require.Equal(t, 10*time.Second, cfg.Validation.LookupTimeout)
	require.Equal(t, 8*time.Hour, cfg.Auth.JWT.TTL)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	contents := []byte(`
server:
  port: 9090
  log_level: debug
database:
  driver: postgres
  host: db.internal
  name: sigpat
  user: sigpat
audit:
  retention_days: 30
validation:
  debounce: 250ms
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), contents, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db.internal", cfg.Database.Host)
	require.Equal(t, 30, cfg.Audit.RetentionDays)
	require.Equal(t, 250*time.Millisecond, cfg.Validation.Debounce)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SIGPAT_SERVER_PORT", "7070")
	t.Setenv("SIGPAT_DATABASE_DRIVER", "mysql")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "mysql", cfg.Database.Driver)
}
