package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, k := range []string{
		"HOUSEDASH_API_URL", "HOUSEDASH_TIMEOUT_SEC", "HOUSEDASH_THEME",
		"HOUSEDASH_PROXY_ADDR", "HOUSEDASH_UPSTREAM", "HOUSEDASH_LOG_LEVEL", "HOUSEDASH_LOG_FILE",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := isolate(t)

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://example.test/api"
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Proxy.CacheTTLSec = 60
	require.NoError(t, Save(cfg))

	assert.True(t, Exists())
	assert.Equal(t, filepath.Join(dir, "housedash", "config.toml"), Path())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, time.Minute, got.CacheTTL())
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	require.NoError(t, Save(DefaultConfig()))

	t.Setenv("HOUSEDASH_API_URL", "http://override/api")
	t.Setenv("HOUSEDASH_TIMEOUT_SEC", "5")
	t.Setenv("HOUSEDASH_UPSTREAM", "http://upstream.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://override/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, "http://upstream.test", cfg.Proxy.Upstream)
}

func TestLoad_BadTOML(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(Dir(), 0o755))
	require.NoError(t, os.WriteFile(Path(), []byte("[api\nbase_url = "), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestCacheDBPath(t *testing.T) {
	dir := isolate(t)

	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join(dir, "cache", "housedash", "proxy.db"), cfg.CacheDBPath())

	cfg.Proxy.CacheDB = "/tmp/x.db"
	assert.Equal(t, "/tmp/x.db", cfg.CacheDBPath())
}

func TestTimeoutOverride(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.API.TimeoutSec = 10
	cfg.API.TimeoutOverride = 500 * time.Millisecond
	assert.Equal(t, 500*time.Millisecond, cfg.Timeout())

	require.NoError(t, Save(cfg))
	got, err := Load()
	require.NoError(t, err)
	assert.Zero(t, got.API.TimeoutOverride)
	assert.Equal(t, 10*time.Second, got.Timeout())
}
