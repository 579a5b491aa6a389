package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/housedash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [API]")
	fmt.Printf("    Base URL: %s\n", cfg.API.BaseURL)
	fmt.Printf("    Timeout:  %s\n", cfg.Timeout())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Proxy]")
	fmt.Printf("    Address:      %s\n", cfg.Proxy.Addr)
	fmt.Printf("    Upstream:     %s\n", cfg.Proxy.Upstream)
	fmt.Printf("    CORS origins: %s\n", strings.Join(cfg.Proxy.CORSOrigins, ", "))
	if cfg.Proxy.DisableCache {
		fmt.Println("    Cache:        disabled")
	} else {
		fmt.Printf("    Cache:        %s (%s)\n", cfg.CacheTTL(), cfg.CacheDBPath())
		fmt.Printf("    Prune:        %s\n", cfg.Proxy.PruneSpec)
	}
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Printf("    File:  %s\n", cfg.Log.File)
	}
	fmt.Println()

	fmt.Println("  Run `housedash setup` to reconfigure.")
	return nil
}
