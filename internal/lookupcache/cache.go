package lookupcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"keepaudio/internal/identification"
	"keepaudio/internal/logging"
)

// timestampLayout is fixed-width so cached_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `CREATE TABLE IF NOT EXISTS lookups (
    signal_key TEXT PRIMARY KEY,
    tmdb_id INTEGER NOT NULL,
    title TEXT NOT NULL,
    release_year INTEGER,
    original_language TEXT NOT NULL,
    original_language3 TEXT NOT NULL,
    cached_at TEXT NOT NULL
)`

// Entry is a cached resolution with its storage time.
type Entry struct {
	Key      string
	Movie    identification.Movie
	CachedAt time.Time
}

// Cache persists resolved movies so the file-test and worker hooks resolve
// a file against TMDB once.
type Cache struct {
	db     *sql.DB
	path   string
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

var _ identification.Cache = (*Cache)(nil)

// Open creates or connects to the cache database at path. A zero ttl keeps
// entries forever.
func Open(path string, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("lookup cache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Cache{
		db:     db,
		path:   path,
		ttl:    ttl,
		logger: logging.NewComponentLogger(logger, "lookupcache"),
		now:    time.Now,
	}, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Path returns the database location.
func (c *Cache) Path() string {
	return c.path
}

// Lookup returns the cached movie for key. Expired entries are treated as misses.
func (c *Cache) Lookup(ctx context.Context, key string) (identification.Movie, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return identification.Movie{}, false, nil
	}
	row := c.db.QueryRowContext(ctx,
		`SELECT signal_key, tmdb_id, title, release_year, original_language, original_language3, cached_at
         FROM lookups WHERE signal_key = ?`, key)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return identification.Movie{}, false, nil
	}
	if err != nil {
		return identification.Movie{}, false, fmt.Errorf("query lookup: %w", err)
	}
	if c.expired(entry.CachedAt) {
		c.logger.Debug("lookup cache entry expired",
			logging.String("signal_key", key),
			logging.String("cached_at", entry.CachedAt.Format(time.RFC3339)))
		return identification.Movie{}, false, nil
	}
	return entry.Movie, true, nil
}

// Store inserts or replaces the cached movie for key.
func (c *Cache) Store(ctx context.Context, key string, movie identification.Movie) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("lookup cache key cannot be empty")
	}
	var year sql.NullInt64
	if movie.HasReleaseYear {
		year = sql.NullInt64{Int64: int64(movie.ReleaseYear), Valid: true}
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO lookups (signal_key, tmdb_id, title, release_year, original_language, original_language3, cached_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(signal_key) DO UPDATE SET
            tmdb_id = excluded.tmdb_id,
            title = excluded.title,
            release_year = excluded.release_year,
            original_language = excluded.original_language,
            original_language3 = excluded.original_language3,
            cached_at = excluded.cached_at`,
		key, movie.ID, movie.Title, year, movie.OriginalLanguage, movie.OriginalLanguage3,
		c.now().UTC().Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("store lookup: %w", err)
	}
	c.logger.Debug("cached movie lookup",
		logging.String("signal_key", key),
		logging.Int64("tmdb_id", movie.ID),
		logging.String("title", movie.Title))
	return nil
}

// List returns every entry, newest first.
func (c *Cache) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT signal_key, tmdb_id, title, release_year, original_language, original_language3, cached_at
         FROM lookups ORDER BY cached_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list lookups: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lookup: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Prune deletes expired entries and returns how many were removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := c.now().Add(-c.ttl).UTC().Format(timestampLayout)
	res, err := c.db.ExecContext(ctx, `DELETE FROM lookups WHERE cached_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune lookups: %w", err)
	}
	return res.RowsAffected()
}

// Clear removes every entry.
func (c *Cache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM lookups`); err != nil {
		return fmt.Errorf("clear lookups: %w", err)
	}
	return nil
}

func (c *Cache) expired(cachedAt time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return c.now().Sub(cachedAt) > c.ttl
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		entry    Entry
		year     sql.NullInt64
		cachedAt string
	)
	if err := row.Scan(
		&entry.Key,
		&entry.Movie.ID,
		&entry.Movie.Title,
		&year,
		&entry.Movie.OriginalLanguage,
		&entry.Movie.OriginalLanguage3,
		&cachedAt,
	); err != nil {
		return Entry{}, err
	}
	if year.Valid {
		entry.Movie.ReleaseYear = int(year.Int64)
		entry.Movie.HasReleaseYear = true
	}
	parsed, err := time.Parse(timestampLayout, cachedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parse cached_at %q: %w", cachedAt, err)
	}
	entry.CachedAt = parsed
	return entry, nil
}
