// Package store provides a SQLite-backed cache for proxied API responses.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vmihailenco/msgpack/v5"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Entry is a cached upstream response.
type Entry struct {
	Status      int         `msgpack:"status"`
	ContentType string      `msgpack:"content_type"`
	Header      http.Header `msgpack:"header,omitempty"`
	Body        []byte      `msgpack:"body"`
	StoredAt    time.Time   `msgpack:"stored_at"`
}

// Stats summarizes cache contents.
type Stats struct {
	Entries int
	Expired int
	Hits    int64
}

// Cache provides SQLite-backed response caching with a fixed TTL.
type Cache struct {
	db    *sql.DB
	ttl   time.Duration
	clock clockwork.Clock
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces the wall clock used to judge expiry.
func WithClock(c clockwork.Clock) Option {
	return func(cache *Cache) { cache.clock = c }
}

// Open opens or creates the cache database at the given path.
// Use ":memory:" for a private in-memory database.
func Open(dbPath string, ttl time.Duration, opts ...Option) (*Cache, error) {
	dsn := "file::memory:"
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating cache dir: %w", err)
		}
		dsn = dbPath + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	if dbPath == ":memory:" {
		// each connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	c := &Cache{db: db, ttl: ttl, clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// TTL returns the entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the live entry for key. Expired entries are reported as misses.
func (c *Cache) Get(ctx context.Context, key string) (*Entry, bool, error) {
	var payload []byte
	var expiresAt int64
	err := c.db.QueryRowContext(ctx,
		"SELECT payload, expires_at FROM responses WHERE cache_key = ?", key,
	).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}
	if c.clock.Now().UnixNano() >= expiresAt {
		return nil, false, nil
	}

	var e Entry
	if err := msgpack.Unmarshal(payload, &e); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, "UPDATE responses SET hits = hits + 1 WHERE cache_key = ?", key); err != nil {
		return nil, false, fmt.Errorf("counting cache hit: %w", err)
	}
	return &e, true, nil
}

// Put stores an entry under key, replacing any previous value.
func (c *Cache) Put(ctx context.Context, key string, e Entry) error {
	now := c.clock.Now()
	e.StoredAt = now.UTC()

	payload, err := msgpack.Marshal(&e)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `INSERT OR REPLACE INTO responses
		(cache_key, payload, stored_at, expires_at, hits)
		VALUES (?, ?, ?, ?, 0)`,
		key, payload, now.UnixNano(), now.Add(c.ttl).UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Prune deletes expired entries and returns how many were removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM responses WHERE expires_at <= ?", c.clock.Now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}

// Clear deletes every entry.
func (c *Cache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM responses"); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// Stats returns entry counts and the total hit count.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := c.db.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN expires_at <= ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(hits), 0)
		FROM responses`, c.clock.Now().UnixNano(),
	).Scan(&s.Entries, &s.Expired, &s.Hits)
	if err != nil {
		return s, fmt.Errorf("reading cache stats: %w", err)
	}
	return s, nil
}
