package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql
var schema string

// StoreConfig represents cache store configuration
type StoreConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store is the SQLite-backed keyed record store for cache entries,
// addressable by (digest, kind)
type Store struct {
	db *sqlx.DB
}

// entrySQL represents a cache entry row
type entrySQL struct {
	CacheKey  string    `db:"cache_key"`
	CacheType string    `db:"cache_type"`
	Data      []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
}

// NewStore opens the cache database, applies pragmas and initializes the schema
func NewStore(ctx context.Context, cfg StoreConfig) (*Store, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:econoscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Upsert writes a cache entry, replacing any existing record with the same
// (key, kind). SQLite lock errors are retried with backoff.
func (s *Store) Upsert(ctx context.Context, key string, kind Kind, data []byte) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO cache_entries (cache_key, cache_type, data)
			VALUES (?, ?, ?)
			ON CONFLICT (cache_key, cache_type) DO UPDATE SET data = excluded.data
		`
		_, err := s.db.ExecContext(ctx, query, key, string(kind), data)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("upsert cache entry: %w", err)}
		}
		return nil
	})
}

// ErrNotFound indicates no entry exists for the requested (key, kind)
var ErrNotFound = errors.New("cache entry not found")

// Get returns the stored payload for (key, kind), ErrNotFound on miss
func (s *Store) Get(ctx context.Context, key string, kind Kind) ([]byte, error) {
	var entry entrySQL
	err := s.db.GetContext(ctx, &entry,
		"SELECT cache_key, cache_type, data, created_at FROM cache_entries WHERE cache_key = ? AND cache_type = ?",
		key, string(kind))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cache entry: %w", err)
	}
	return entry.Data, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
