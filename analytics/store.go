package analytics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store keeps view counters in their own SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the view counter database at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create analytics dir: %w", err)
	}
	// Pragmas go in the DSN so every pooled connection gets them.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS views (
			slug TEXT PRIMARY KEY,
			count INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_views_count ON views(count);
	`)
	return err
}

// Increment adds one view to slug and returns the new total.
func (s *Store) Increment(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO views (slug, count, updated_at) VALUES (?, 1, ?)
		ON CONFLICT(slug) DO UPDATE SET count = count + 1, updated_at = excluded.updated_at
		RETURNING count`,
		slug, time.Now().UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("increment views for %q: %w", slug, err)
	}
	return count, nil
}

// Count returns the views recorded for slug, zero if it was never viewed.
func (s *Store) Count(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT count FROM views WHERE slug = ?`, slug).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count views for %q: %w", slug, err)
	}
	return count, nil
}

// Top returns the n most viewed articles, highest first.
func (s *Store) Top(ctx context.Context, n int) ([]PageViews, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug, count FROM views ORDER BY count DESC, slug ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("top views: %w", err)
	}
	defer rows.Close()

	top := []PageViews{}
	for rows.Next() {
		var pv PageViews
		if err := rows.Scan(&pv.Slug, &pv.Count); err != nil {
			return nil, err
		}
		top = append(top, pv)
	}
	return top, rows.Err()
}
