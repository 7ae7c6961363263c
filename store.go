package folio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/folio/content"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("folio: post not found")

// sortableTime is fixed-width so date_utc orders correctly as text.
const sortableTime = "2006-01-02T15:04:05.000000000Z"

const postColumns = `slug, title, date, description, tags, image, canonical, noindex, draft, excerpt, html, body, reading_time, path`

// Store is the SQLite post index. It mirrors the content directory after
// every load so listings and tag queries do not need to reparse Markdown.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the dev server read while the watcher re-syncs; the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
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

// schemaVersion is bumped whenever the posts table changes shape. The index
// is rebuilt from content on every sync, so older tables are dropped.
const schemaVersion = 2

func (s *Store) ensureSchema() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return err
	}
	if version != schemaVersion {
		if _, err := s.db.Exec(`DROP TABLE IF EXISTS posts`); err != nil {
			return err
		}
	}
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    date_utc TEXT NOT NULL,
    description TEXT NOT NULL,
    tags TEXT NOT NULL,
    image TEXT NOT NULL,
    canonical TEXT NOT NULL,
    noindex INTEGER NOT NULL DEFAULT 0,
    draft INTEGER NOT NULL DEFAULT 0,
    excerpt TEXT NOT NULL,
    html TEXT NOT NULL,
    body TEXT NOT NULL,
    reading_time INTEGER NOT NULL DEFAULT 1,
    path TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS posts_date_utc ON posts (date_utc DESC, slug);
`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion))
	return err
}

// SyncPosts replaces the index with posts in a single transaction.
func (s *Store) SyncPosts(ctx context.Context, posts []content.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO posts (`+postColumns+`, date_utc) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range posts {
		if _, err := stmt.ExecContext(ctx,
			p.Slug, p.Title, p.Date.Format(time.RFC3339Nano), p.Description, JoinTags(p.Tags),
			p.Image, p.Canonical, boolInt(p.NoIndex), boolInt(p.Draft),
			p.Excerpt, p.HTML, p.Body, p.ReadingTime, p.Path,
			p.Date.UTC().Format(sortableTime),
		); err != nil {
			return fmt.Errorf("index %s: %w", p.Slug, err)
		}
	}
	return tx.Commit()
}

// ListPosts returns indexed posts ordered by date descending.
// If tag is non-empty, results are filtered to posts containing that tag.
func (s *Store) ListPosts(tag string) ([]content.Post, error) {
	var rows *sql.Rows
	var err error
	if tag == "" {
		rows, err = s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY date_utc DESC, slug ASC`)
	} else {
		rows, err = s.db.Query(`SELECT `+postColumns+` FROM posts WHERE instr(tags, ',' || ? || ',') > 0 ORDER BY date_utc DESC, slug ASC`, content.NormalizeTag(tag))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListTags returns a sorted, deduplicated slice of all indexed tags.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM posts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			set[t] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	result := make([]string, 0, len(set))
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result, nil
}

// GetPost returns a single post by slug.
func (s *Store) GetPost(slug string) (content.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Post{}, ErrNotFound
	}
	return p, err
}

// CountPosts returns the number of indexed posts.
func (s *Store) CountPosts() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(sc scanner) (content.Post, error) {
	var (
		p                     content.Post
		date, tags            string
		noindex, draft, rtime int
	)
	if err := sc.Scan(&p.Slug, &p.Title, &date, &p.Description, &tags, &p.Image, &p.Canonical,
		&noindex, &draft, &p.Excerpt, &p.HTML, &p.Body, &rtime, &p.Path); err != nil {
		return content.Post{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return content.Post{}, fmt.Errorf("post %s: bad indexed date %q: %w", p.Slug, date, err)
	}
	p.Date = t
	p.Tags = ParseTags(tags)
	p.NoIndex = noindex == 1
	p.Draft = draft == 1
	p.ReadingTime = rtime
	return p, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// JoinTags encodes tags as a comma-delimited string with leading and
// trailing commas (",go,web,") so a tag can be matched with instr.
func JoinTags(tags []string) string {
	if len(tags) == 0 {
		return ","
	}
	return "," + strings.Join(content.NormalizeTags(tags), ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
