package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteCache implements PageCache using modernc.org/sqlite.
type SQLiteCache struct {
	db *sql.DB
}

// Ensure SQLiteCache implements PageCache.
var _ PageCache = (*SQLiteCache)(nil)

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteCache{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS page_cache (
	id         TEXT PRIMARY KEY,
	area_key   TEXT NOT NULL,
	body       BLOB NOT NULL,
	fetched_at DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_page_cache_area_key ON page_cache(area_key);
CREATE INDEX IF NOT EXISTS idx_page_cache_expires_at ON page_cache(expires_at);
`

// Migrate creates the cache schema.
func (s *SQLiteCache) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteCache) Close() error {
	return s.db.Close()
}

// GetPage returns the newest unexpired body for an area key, or nil on a
// miss.
func (s *SQLiteCache) GetPage(ctx context.Context, areaKey string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT body FROM page_cache
		 WHERE area_key = ? AND expires_at > datetime('now')
		 ORDER BY fetched_at DESC LIMIT 1`,
		areaKey,
	)

	var body []byte
	err := row.Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get cached page")
	}
	return body, nil
}

// SetPage stores a fetched page body with the given freshness window,
// replacing any previous entry for the key.
func (s *SQLiteCache) SetPage(ctx context.Context, areaKey string, body []byte, ttl time.Duration) error {
	now := time.Now().UTC()

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM page_cache WHERE area_key = ?`, areaKey,
	); err != nil {
		return eris.Wrap(err, "sqlite: evict cached page")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO page_cache (id, area_key, body, fetched_at, expires_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), areaKey, body, now, now.Add(ttl),
	)
	return eris.Wrap(err, "sqlite: set cached page")
}

// PurgeExpired deletes entries past their freshness window.
func (s *SQLiteCache) PurgeExpired(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM page_cache WHERE expires_at <= datetime('now')`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: purge expired pages")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}
