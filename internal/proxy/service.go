// Package proxy forwards /api/* to the housing API, the way the web
// frontend's rewrite rule did, with an optional SQLite response cache.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/housedash/internal/store"
)

const maxCachedBody = 8 << 20 // 8 MB

// Config controls the proxy runtime behavior.
type Config struct {
	Addr        string
	Upstream    string
	CORSOrigins []string
	PruneSpec   string

	// Cache is optional; nil disables response caching.
	Cache     *store.Cache
	Transport http.RoundTripper
	Registry  *prometheus.Registry
	Log       zerolog.Logger
}

// Status is served at /v1/status.
type Status struct {
	StartedAt      time.Time `json:"started_at"`
	Upstream       string    `json:"upstream"`
	Requests       int64     `json:"requests"`
	CacheEnabled   bool      `json:"cache_enabled"`
	CacheHits      int64     `json:"cache_hits"`
	CacheMisses    int64     `json:"cache_misses"`
	CacheEntries   int       `json:"cache_entries"`
	UpstreamErrors int64     `json:"upstream_errors"`
	LastError      string    `json:"last_error,omitempty"`
	LastPruneAt    time.Time `json:"last_prune_at,omitempty"`
	PrunedTotal    int64     `json:"pruned_total"`
}

// Service is the reverse proxy plus its health, status, and metrics API.
type Service struct {
	cfg      Config
	upstream *url.URL
	router   *chi.Mux
	rp       *httputil.ReverseProxy
	metrics  *Metrics
	registry *prometheus.Registry
	cron     *cron.Cron
	log      zerolog.Logger

	mu             sync.RWMutex
	startedAt      time.Time
	requests       int64
	cacheHits      int64
	cacheMisses    int64
	upstreamErrors int64
	lastError      string
	lastPruneAt    time.Time
	prunedTotal    int64
}

type ctxKey int

const cacheKeyCtx ctxKey = iota

// New returns a proxy service for the provided config.
func New(cfg Config) (*Service, error) {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:3000"
	}
	if cfg.PruneSpec == "" {
		cfg.PruneSpec = "@every 10m"
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	upstream, err := url.Parse(strings.TrimRight(cfg.Upstream, "/"))
	if err != nil || upstream.Scheme == "" || upstream.Host == "" {
		return nil, fmt.Errorf("proxy: invalid upstream %q", cfg.Upstream)
	}

	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Service{
		cfg:       cfg,
		upstream:  upstream,
		router:    chi.NewRouter(),
		metrics:   NewMetrics(reg),
		registry:  reg,
		cron:      cron.New(),
		log:       cfg.Log.With().Str("component", "proxy").Logger(),
		startedAt: time.Now(),
	}

	s.rp = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(s.upstream)
			pr.SetXForwarded()
		},
		Transport:      cfg.Transport,
		ModifyResponse: s.captureResponse,
		ErrorHandler:   s.upstreamError,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Service) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Cache", "X-Request-Id"},
		MaxAge:         300,
	}))
}

func (s *Service) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/v1/status", s.handleStatus)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.router.Handle("/api/*", http.StripPrefix("/api", http.HandlerFunc(s.handleForward)))
}

// Handler exposes the router, useful for testing.
func (s *Service) Handler() http.Handler {
	return s.router
}

// Run serves HTTP and runs the cache prune job until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if s.cfg.Cache != nil {
		if _, err := s.cron.AddFunc(s.cfg.PruneSpec, func() { s.prune(context.Background()) }); err != nil {
			return fmt.Errorf("proxy: prune schedule %q: %w", s.cfg.PruneSpec, err)
		}
		s.cron.Start()
		defer func() { <-s.cron.Stop().Done() }()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info().
		Str("addr", s.cfg.Addr).
		Str("upstream", s.upstream.String()).
		Bool("cache", s.cfg.Cache != nil).
		Msg("proxy listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("proxy http server: %w", err)
	}
}

func (s *Service) handleForward(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()

	if s.cfg.Cache == nil || r.Method != http.MethodGet {
		s.metrics.Cache.WithLabelValues("bypass").Inc()
		s.forward(w, r)
		return
	}

	key := cacheKey(r)
	entry, ok, err := s.cfg.Cache.Get(r.Context(), key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if ok {
		s.mu.Lock()
		s.cacheHits++
		s.mu.Unlock()
		s.metrics.Cache.WithLabelValues("hit").Inc()
		writeEntry(w, entry)
		return
	}

	s.mu.Lock()
	s.cacheMisses++
	s.mu.Unlock()
	s.metrics.Cache.WithLabelValues("miss").Inc()

	ctx := context.WithValue(r.Context(), cacheKeyCtx, key)
	s.forward(w, r.WithContext(ctx))
}

func (s *Service) forward(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.rp.ServeHTTP(w, r)
	s.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
}

// captureResponse stores successful GET responses in the cache.
func (s *Service) captureResponse(resp *http.Response) error {
	key, _ := resp.Request.Context().Value(cacheKeyCtx).(string)
	if key == "" {
		return nil
	}
	resp.Header.Set("X-Cache", "MISS")
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	orig := resp.Body
	body, err := io.ReadAll(io.LimitReader(orig, maxCachedBody+1))
	if err != nil {
		return fmt.Errorf("reading upstream body: %w", err)
	}
	if len(body) > maxCachedBody {
		// too large to cache; relay what was read plus the rest
		resp.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(body), orig), orig}
		return nil
	}
	_ = orig.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))

	err = s.cfg.Cache.Put(resp.Request.Context(), key, store.Entry{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Header:      entryHeader(resp.Header),
		Body:        body,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return nil
}

func (s *Service) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	s.mu.Lock()
	s.upstreamErrors++
	s.lastError = err.Error()
	s.mu.Unlock()
	s.metrics.UpstreamErrors.Inc()

	s.log.Error().Err(err).Str("path", r.URL.Path).Msg("upstream request failed")
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Failed to reach housing API"})
}

func (s *Service) prune(ctx context.Context) {
	n, err := s.cfg.Cache.Prune(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPruneAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
		s.log.Error().Err(err).Msg("cache prune failed")
		return
	}
	s.prunedTotal += n
	s.metrics.CachePruned.Add(float64(n))
	s.log.Debug().Int64("removed", n).Msg("cache pruned")
}

func (s *Service) snapshotStatus(ctx context.Context) Status {
	s.mu.RLock()
	st := Status{
		StartedAt:      s.startedAt,
		Upstream:       s.upstream.String(),
		Requests:       s.requests,
		CacheEnabled:   s.cfg.Cache != nil,
		CacheHits:      s.cacheHits,
		CacheMisses:    s.cacheMisses,
		UpstreamErrors: s.upstreamErrors,
		LastError:      s.lastError,
		LastPruneAt:    s.lastPruneAt,
		PrunedTotal:    s.prunedTotal,
	}
	s.mu.RUnlock()

	if s.cfg.Cache != nil {
		if cs, err := s.cfg.Cache.Stats(ctx); err == nil {
			st.CacheEntries = cs.Entries
		}
	}
	return st
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus(r.Context()))
}

// loggingMiddleware logs requests and counts them by route.
func (s *Service) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.Requests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// requestID propagates X-Request-Id, minting a UUID when absent.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(middleware.RequestIDHeader, id)
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// replayedHeaders are the upstream headers a cached body cannot be served
// without.
var replayedHeaders = []string{"Content-Encoding", "Vary"}

// cacheKey identifies a request by path, normalized query and the encodings
// the client accepts, since the upstream may compress per client.
func cacheKey(r *http.Request) string {
	key := r.URL.Path
	if q := r.URL.Query().Encode(); q != "" {
		key += "?" + q
	}
	if ae := normalizeAcceptEncoding(r.Header.Get("Accept-Encoding")); ae != "" {
		key += "#ae=" + ae
	}
	return key
}

func normalizeAcceptEncoding(v string) string {
	var parts []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			parts = append(parts, strings.ReplaceAll(p, " ", ""))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func entryHeader(h http.Header) http.Header {
	out := http.Header{}
	for _, name := range replayedHeaders {
		if vs := h.Values(name); len(vs) > 0 {
			out[name] = append([]string(nil), vs...)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func writeEntry(w http.ResponseWriter, e *store.Entry) {
	if e.ContentType != "" {
		w.Header().Set("Content-Type", e.ContentType)
	}
	for name, vs := range e.Header {
		for _, v := range vs {
			w.Header().Add(name, v)
		}
	}
	w.Header().Set("X-Cache", "HIT")
	w.WriteHeader(e.Status)
	_, _ = w.Write(e.Body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
