// Package cmd implements the housedash CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/housedash/internal/api"
	"github.com/theirongolddev/housedash/internal/config"
	"github.com/theirongolddev/housedash/internal/logging"
	"github.com/theirongolddev/housedash/internal/tui/theme"
)

var (
	flagAPIURL   string
	flagTimeout  time.Duration
	flagLocation string
	flagQuiet    bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:          "housedash",
	Short:        "Housing price history and forecasts",
	Long:         "Browse historical housing prices and model forecasts by location, in the terminal.",
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Housing API root (default from config)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Per-request timeout (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVarP(&flagLocation, "location", "l", "", "Location to open the dashboard on")
}

// loadConfig loads the config file and applies command-line overrides.
// A broken config file is reported and defaults are used.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	if flagAPIURL != "" {
		cfg.API.BaseURL = flagAPIURL
	}
	if flagTimeout > 0 {
		cfg.API.TimeoutOverride = flagTimeout
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	theme.SetActive(cfg.Appearance.Theme)
	return cfg
}

func newClient(cfg config.Config) *api.Client {
	return api.NewClient(cfg.API.BaseURL, api.WithTimeout(cfg.Timeout()))
}

// newCLILogger returns a console logger on stderr. --quiet raises the
// level to errors only.
func newCLILogger(cfg config.Config) (zerolog.Logger, io.Closer) {
	level := cfg.Log.Level
	if flagQuiet {
		level = "error"
	}
	log, closer, err := logging.New(logging.Config{
		Level:  level,
		Pretty: true,
		File:   cfg.Log.File,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v\n", err)
		log, closer, _ = logging.New(logging.Config{Level: level, Pretty: true})
	}
	return log, closer
}
