package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/housedash/internal/cli"
	"github.com/theirongolddev/housedash/internal/proxy"
	"github.com/theirongolddev/housedash/internal/store"
)

var (
	flagProxyAddr     string
	flagProxyUpstream string
	flagProxyNoCache  bool
	flagProxyTTL      time.Duration
)

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Serve /api/* from the upstream housing API, with caching",
	RunE:  runProxy,
}

var proxyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running proxy's status",
	RunE:  runProxyStatus,
}

func init() {
	proxyCmd.PersistentFlags().StringVar(&flagProxyAddr, "addr", "", "HTTP listen address (default from config)")
	proxyCmd.Flags().StringVar(&flagProxyUpstream, "upstream", "", "Upstream housing API (default from config)")
	proxyCmd.Flags().BoolVar(&flagProxyNoCache, "no-cache", false, "Disable the response cache")
	proxyCmd.Flags().DurationVar(&flagProxyTTL, "ttl", 0, "Cache entry lifetime (default from config)")

	proxyCmd.AddCommand(proxyStatusCmd)
	rootCmd.AddCommand(proxyCmd)
}

func proxyAddr() string {
	if flagProxyAddr != "" {
		return flagProxyAddr
	}
	return loadConfig().Proxy.Addr
}

func runProxy(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	if flagProxyUpstream != "" {
		cfg.Proxy.Upstream = flagProxyUpstream
	}
	if flagProxyTTL > 0 {
		cfg.Proxy.CacheTTLSec = int(flagProxyTTL.Seconds())
	}
	if flagProxyNoCache {
		cfg.Proxy.DisableCache = true
	}
	addr := proxyAddr()

	log, closer := newCLILogger(cfg)
	defer closer.Close()

	var cache *store.Cache
	if !cfg.Proxy.DisableCache && cfg.CacheTTL() > 0 {
		c, err := store.Open(cfg.CacheDBPath(), cfg.CacheTTL())
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.CacheDBPath()).Msg("response cache unavailable, continuing without it")
		} else {
			defer c.Close()
			cache = c
		}
	}

	svc, err := proxy.New(proxy.Config{
		Addr:        addr,
		Upstream:    cfg.Proxy.Upstream,
		CORSOrigins: cfg.Proxy.CORSOrigins,
		PruneSpec:   cfg.Proxy.PruneSpec,
		Cache:       cache,
		Log:         log,
	})
	if err != nil {
		return err
	}

	fmt.Printf("  housedash proxy listening on http://%s\n", addr)
	fmt.Printf("  Forwarding /api/* to %s\n", cfg.Proxy.Upstream)
	if cache != nil {
		fmt.Printf("  Caching responses for %s in %s\n", cfg.CacheTTL(), cfg.CacheDBPath())
	}
	fmt.Printf("  Status: http://%s/v1/status\n", addr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runProxyStatus(cmd *cobra.Command, _ []string) error {
	addr := proxyAddr()
	fmt.Printf("  Address: http://%s\n", addr)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/v1/status", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("  Proxy: not running (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  Proxy: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st proxy.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  Proxy: malformed status response (%v)\n", err)
		return nil
	}

	fmt.Printf("  Upstream: %s\n", st.Upstream)
	fmt.Printf("  Up since: %s\n", st.StartedAt.Local().Format(time.RFC3339))
	fmt.Printf("  Requests: %s\n", cli.FormatNumber(st.Requests))
	if st.CacheEnabled {
		fmt.Printf("  Cache: %s entries, %s hits, %s misses\n",
			cli.FormatNumber(int64(st.CacheEntries)),
			cli.FormatNumber(st.CacheHits),
			cli.FormatNumber(st.CacheMisses))
		if !st.LastPruneAt.IsZero() {
			fmt.Printf("  Last prune: %s (%s removed in total)\n",
				st.LastPruneAt.Local().Format(time.RFC3339), cli.FormatNumber(st.PrunedTotal))
		}
	} else {
		fmt.Println("  Cache: disabled")
	}
	fmt.Printf("  Upstream errors: %s\n", cli.FormatNumber(st.UpstreamErrors))
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}
