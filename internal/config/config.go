// Package config loads and saves housedash settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// DefaultAPIURL is the API root the dashboard talks to.
	DefaultAPIURL = "http://localhost:3000/api"
	// DefaultUpstream is the housing API the dev proxy forwards to.
	DefaultUpstream = "https://housing-price-dashboard-j63g.onrender.com"
)

// Config holds all housedash configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	Appearance AppearanceConfig `toml:"appearance"`
	Proxy      ProxyConfig      `toml:"proxy"`
	Log        LogConfig        `toml:"log"`
}

// APIConfig holds housing API client settings.
type APIConfig struct {
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"`

	// TimeoutOverride comes from --timeout; it wins over TimeoutSec and is
	// never saved.
	TimeoutOverride time.Duration `toml:"-"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ProxyConfig holds settings for the /api reverse proxy.
type ProxyConfig struct {
	Addr         string   `toml:"addr"`
	Upstream     string   `toml:"upstream"`
	CacheTTLSec  int      `toml:"cache_ttl_sec"`
	CacheDB      string   `toml:"cache_db,omitempty"`
	PruneSpec    string   `toml:"prune_schedule"`
	CORSOrigins  []string `toml:"cors_origins"`
	DisableCache bool     `toml:"disable_cache,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:    DefaultAPIURL,
			TimeoutSec: 30,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Proxy: ProxyConfig{
			Addr:        "127.0.0.1:3000",
			Upstream:    DefaultUpstream,
			CacheTTLSec: 900,
			PruneSpec:   "@every 10m",
			CORSOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Timeout returns the API request timeout.
func (c Config) Timeout() time.Duration {
	if c.API.TimeoutOverride > 0 {
		return c.API.TimeoutOverride
	}
	if c.API.TimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.API.TimeoutSec) * time.Second
}

// CacheTTL returns the proxy cache entry lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Proxy.CacheTTLSec) * time.Second
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "housedash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "housedash")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the XDG-compliant cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "housedash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "housedash")
}

// CacheDBPath returns the proxy cache database path.
func (c Config) CacheDBPath() string {
	if c.Proxy.CacheDB != "" {
		return c.Proxy.CacheDB
	}
	return filepath.Join(CacheDir(), "proxy.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file in the working directory is loaded first, and environment
// variables override file values.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides file values from HOUSEDASH_* environment variables.
func applyEnv(cfg *Config) {
	cfg.API.BaseURL = getEnv("HOUSEDASH_API_URL", cfg.API.BaseURL)
	cfg.API.TimeoutSec = getEnvAsInt("HOUSEDASH_TIMEOUT_SEC", cfg.API.TimeoutSec)
	cfg.Appearance.Theme = getEnv("HOUSEDASH_THEME", cfg.Appearance.Theme)
	cfg.Proxy.Addr = getEnv("HOUSEDASH_PROXY_ADDR", cfg.Proxy.Addr)
	cfg.Proxy.Upstream = getEnv("HOUSEDASH_UPSTREAM", cfg.Proxy.Upstream)
	cfg.Log.Level = getEnv("HOUSEDASH_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("HOUSEDASH_LOG_FILE", cfg.Log.File)
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
