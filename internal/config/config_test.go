package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tf2metrics.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadDefaults(t *testing.T) {
	path := writeConfig(t, "user: me\n")
	cfg, err := Read(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, "me", cfg.User)
	require.Equal(t, DefaultRefreshInterval, cfg.RefreshInterval)
	require.Equal(t, DefaultDB, cfg.DB)
	require.True(t, cfg.Roster.Enabled)
	require.Equal(t, DefaultRosterTimeout, cfg.Roster.Timeout)
	require.Equal(t, "info", cfg.Log.Level)
	require.NotEmpty(t, cfg.LogPath)
}

func TestReadFile(t *testing.T) {
	path := writeConfig(t, `
user: "foo bar"
log_path: /tmp/console.log
db: weapons.db
refresh_interval: 5s
roster:
  enabled: false
  timeout: 1s
metrics:
  addr: 127.0.0.1:9100
logging:
  level: debug
  file: /tmp/tf2metrics.log
`)
	cfg, err := Read(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, "foo bar", cfg.User)
	require.Equal(t, "/tmp/console.log", cfg.LogPath)
	require.Equal(t, "weapons.db", cfg.DB)
	require.Equal(t, 5*time.Second, cfg.RefreshInterval)
	require.False(t, cfg.Roster.Enabled)
	require.Equal(t, time.Second, cfg.Roster.Timeout)
	require.Equal(t, "127.0.0.1:9100", cfg.Metrics.Addr)
	require.Equal(t, "debug", cfg.Log.Level)
	require.NoError(t, cfg.RequireMatchInput())
}

func TestReadEnvOverride(t *testing.T) {
	t.Setenv("TF2METRICS_USER", "envuser")
	t.Setenv("TF2METRICS_ROSTER_TIMEOUT", "750ms")
	cfg, err := Read(viper.New(), writeConfig(t, "user: fileuser\n"))
	require.NoError(t, err)
	require.Equal(t, "envuser", cfg.User)
	require.Equal(t, 750*time.Millisecond, cfg.Roster.Timeout)
}

func TestReadInvalid(t *testing.T) {
	_, err := Read(viper.New(), writeConfig(t, "refresh_interval: 0s\n"))
	require.Error(t, err)

	_, err = Read(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRequireMatchInput(t *testing.T) {
	require.Error(t, Config{LogPath: "x"}.RequireMatchInput())
	require.Error(t, Config{User: "me"}.RequireMatchInput())
	require.NoError(t, Config{User: "me", LogPath: "x"}.RequireMatchInput())
}
