package folio

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/eringen/folio/content"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

const postColumns = `slug, title, date, tags, summary, content, image, published`

// sourceContent marks posts written by a content import. Posts saved from the
// admin have an empty source.
const sourceContent = "content"

// migrations add columns missing from databases created by older versions.
var migrations = []string{
	`ALTER TABLE posts ADD COLUMN image TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE posts ADD COLUMN source TEXT NOT NULL DEFAULT ''`,
}

// Store wraps a SQLite database and provides CRUD operations for blog posts.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// Pragmas go in the DSN so every pooled connection gets them.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
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
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    summary TEXT NOT NULL,
    content TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_posts_date ON posts(date);
`)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil && !strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (BlogPost, error) {
	var slug, title, date, tags, summary, content, image string
	var published int
	if err := row.Scan(&slug, &title, &date, &tags, &summary, &content, &image, &published); err != nil {
		return BlogPost{}, err
	}
	return BlogPost{
		Slug:      slug,
		Title:     title,
		Date:      date,
		Tags:      DecodeTags(tags),
		Summary:   summary,
		Content:   content,
		Image:     image,
		Link:      "/blog/" + slug,
		Published: published == 1,
	}, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]BlogPost, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []BlogPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns all published posts ordered by date descending.
func (s *Store) ListPosts() ([]BlogPost, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY date DESC, slug ASC`)
}

// ListAllPosts returns every post (published and drafts) ordered by date descending.
func (s *Store) ListAllPosts() ([]BlogPost, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC, slug ASC`)
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (BlogPost, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug))
}

// GetPostAny returns a post by slug regardless of published status (for admin).
func (s *Store) GetPostAny(slug string) (BlogPost, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func savePost(db execer, p BlogPost, source string) error {
	published := 0
	if p.Published {
		published = 1
	}
	_, err := db.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`, source) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Date, FormatTags(p.Tags), p.Summary, p.Content, p.Image, published, source)
	return err
}

// SavePost upserts a blog post. Tags keep the author's spelling; category
// matching happens on their slugs, not in SQL. A saved post is owned by the
// admin and is never unpublished by SyncDocuments.
func (s *Store) SavePost(p BlogPost) error {
	return savePost(s.db, p, "")
}

// SetPostImage sets the cover image URL of an existing post.
func (s *Store) SetPostImage(slug, image string) error {
	res, err := s.db.Exec(`UPDATE posts SET image = ? WHERE slug = ?`, image, slug)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// ImportDocuments upserts markdown documents in one transaction. Posts that
// exist only in the database are left alone.
func (s *Store) ImportDocuments(ctx context.Context, docs []content.Document) (int, error) {
	return s.importDocuments(ctx, docs, false)
}

// SyncDocuments upserts docs like ImportDocuments and, in the same
// transaction, unpublishes imported posts whose slug is no longer among docs.
// Posts saved from the admin are kept.
func (s *Store) SyncDocuments(ctx context.Context, docs []content.Document) (int, error) {
	return s.importDocuments(ctx, docs, true)
}

func (s *Store) importDocuments(ctx context.Context, docs []content.Document, sync bool) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("folio: begin import: %w", err)
	}
	defer tx.Rollback()

	slugs := make([]any, 0, len(docs))
	for _, d := range docs {
		if err := savePost(tx, DocumentPost(d), sourceContent); err != nil {
			return 0, fmt.Errorf("folio: import %s: %w", d.Slug, err)
		}
		slugs = append(slugs, d.Slug)
	}
	if sync {
		query := `UPDATE posts SET published = 0 WHERE source = ? AND published = 1`
		if len(slugs) > 0 {
			query += ` AND slug NOT IN (?` + strings.Repeat(`, ?`, len(slugs)-1) + `)`
		}
		if _, err := tx.ExecContext(ctx, query, append([]any{sourceContent}, slugs...)...); err != nil {
			return 0, fmt.Errorf("folio: unpublish removed documents: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("folio: commit import: %w", err)
	}
	return len(docs), nil
}

// DocumentPost converts a markdown document into a BlogPost.
func DocumentPost(d content.Document) BlogPost {
	return BlogPost{
		Slug:      d.Slug,
		Title:     d.Title,
		Date:      d.Date,
		Tags:      d.Tags,
		Summary:   d.Summary,
		Content:   d.Body,
		Image:     d.Image,
		Link:      "/blog/" + d.Slug,
		Published: d.Published,
	}
}

// FormatTags encodes tags as a JSON array (e.g. ["Go","Hello, World"]) so
// tags may contain commas.
func FormatTags(tags []string) string {
	clean := FilterEmpty(tags)
	if len(clean) == 0 {
		return ""
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return ""
	}
	return string(b)
}

// DecodeTags reads the tags column. Rows written before tags were stored as
// JSON hold a comma-delimited string and go through ParseTags.
func DecodeTags(stored string) []string {
	if !strings.HasPrefix(stored, "[") {
		return ParseTags(stored)
	}
	var tags []string
	if err := json.Unmarshal([]byte(stored), &tags); err != nil {
		return ParseTags(stored)
	}
	return FilterEmpty(tags)
}

// ParseTags splits a legacy comma-delimited tag string (e.g. ",go,web,").
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	return FilterEmpty(strings.Split(tagString, ","))
}
