package previewcard

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// BlobStore is the durable path-keyed blob storage the render cache writes
// to. Get returns (nil, false, nil) when the path is absent; a non-nil
// error means the store itself failed.
type BlobStore interface {
	Get(ctx context.Context, path string) (data []byte, contentType string, ok bool, err error)
	Put(ctx context.Context, path string, data []byte, contentType string) error
}

// Store wraps a SQLite database holding durable blobs keyed by path.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, busy timeout so writers wait
	// instead of returning SQLITE_BUSY, synchronous=NORMAL (safe with WAL),
	// larger cache and mmap to reduce disk I/O on hot cache reads.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS blobs (
    path TEXT PRIMARY KEY,
    data BLOB NOT NULL,
    content_type TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`)
	return err
}

// Get returns the blob stored at path, or ok=false if it is absent.
func (s *Store) Get(ctx context.Context, path string) ([]byte, string, bool, error) {
	var data []byte
	var contentType string
	err := s.db.QueryRowContext(ctx, `SELECT data, content_type FROM blobs WHERE path = ?`, path).
		Scan(&data, &contentType)
	if err == sql.ErrNoRows {
		return nil, "", false, nil
	}
	if err != nil {
		return nil, "", false, err
	}
	return data, contentType, true, nil
}

// Put upserts the blob at path. An existing entry is overwritten.
func (s *Store) Put(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO blobs (path, data, content_type, created_at) VALUES (?, ?, ?, ?)`,
		path, data, contentType, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Delete removes the blob at path. Deleting an absent path is not an error.
func (s *Store) Delete(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE path = ?`, path)
	return err
}

// CacheStats summarizes the blobs stored under a path prefix.
type CacheStats struct {
	Entries    int
	TotalBytes int64
}

// StatsPrefix returns entry count and total payload size under prefix.
func (s *Store) StatsPrefix(ctx context.Context, prefix string) (CacheStats, error) {
	var stats CacheStats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(LENGTH(data)), 0) FROM blobs WHERE path LIKE ? || '%'`,
		prefix).Scan(&stats.Entries, &stats.TotalBytes)
	return stats, err
}

// PurgePrefix deletes every blob under prefix and reports how many went.
func (s *Store) PurgePrefix(ctx context.Context, prefix string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE path LIKE ? || '%'`, prefix)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
