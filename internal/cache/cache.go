package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	_ "modernc.org/sqlite"

	"github.com/five82/lobby/internal/content"
)

const schema = `
CREATE TABLE IF NOT EXISTS content_cache (
    section TEXT PRIMARY KEY,
    payload TEXT NOT NULL,
    fetched_at INTEGER NOT NULL
);
`

const upsert = `
INSERT INTO content_cache (section, payload, fetched_at)
VALUES (?, ?, ?)
ON CONFLICT(section) DO UPDATE SET
    payload = excluded.payload,
    fetched_at = excluded.fetched_at`

// Cache persists the last good payload of every section so the kiosk can
// start with content while the API is unreachable.
type Cache struct {
	db *sql.DB
}

// Contents is what Load found on disk.
type Contents struct {
	Bundle   content.Bundle
	Sections []content.Section
	// FetchedAt is the oldest fetch time among Sections.
	FetchedAt time.Time
}

// Empty reports whether no section was cached.
func (c Contents) Empty() bool {
	return len(c.Sections) == 0
}

// Open opens or creates the cache database at path.
func Open(ctx context.Context, path string) (*Cache, error) {
	if path == "" {
		return nil, fmt.Errorf("cache path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping cache: %w", err)
	}
	if err := createSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

// createSchema is safe to call on every start.
func createSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create cache schema: %w", err)
	}
	return nil
}

// Close releases the database.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Save upserts one section's encoded payload.
func (c *Cache) Save(ctx context.Context, section content.Section, payload []byte, at time.Time) error {
	if _, err := c.db.ExecContext(ctx, upsert, string(section), string(payload), at.UnixMilli()); err != nil {
		return fmt.Errorf("save %s: %w", section, err)
	}
	return nil
}

// SaveResult stores every section that fetched successfully in res, in one
// transaction.
func (c *Cache) SaveResult(ctx context.Context, res content.Result) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return fmt.Errorf("prepare cache upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	at := res.FetchedAt
	if at.IsZero() {
		at = time.Now()
	}
	for _, section := range content.Sections() {
		if !res.OK(section) {
			continue
		}
		payload, err := res.Bundle.Encode(section)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, string(section), string(payload), at.UnixMilli()); err != nil {
			return fmt.Errorf("save %s: %w", section, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache tx: %w", err)
	}
	return nil
}

// Load reads every cached section. Rows for sections this build does not know
// are skipped.
func (c *Cache) Load(ctx context.Context) (Contents, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT section, payload, fetched_at FROM content_cache`)
	if err != nil {
		return Contents{}, fmt.Errorf("query cache: %w", err)
	}
	defer func() { _ = rows.Close() }()

	known := content.Sections()
	var out Contents
	var oldest int64
	for rows.Next() {
		var (
			name      string
			payload   string
			fetchedAt int64
		)
		if err := rows.Scan(&name, &payload, &fetchedAt); err != nil {
			return Contents{}, fmt.Errorf("scan cache row: %w", err)
		}
		section := content.Section(name)
		if !slices.Contains(known, section) {
			continue
		}
		if err := out.Bundle.Decode(section, []byte(payload)); err != nil {
			return Contents{}, err
		}
		out.Sections = append(out.Sections, section)
		if oldest == 0 || fetchedAt < oldest {
			oldest = fetchedAt
		}
	}
	if err := rows.Err(); err != nil {
		return Contents{}, fmt.Errorf("read cache rows: %w", err)
	}
	if oldest > 0 {
		out.FetchedAt = time.UnixMilli(oldest)
	}
	return out, nil
}
