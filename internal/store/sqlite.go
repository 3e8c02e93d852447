// Package store persists named pattern sets in SQLite, with JSONL
// export for git-friendly sync.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wildpath/wildpath/internal/pattern"
)

const schema = `
CREATE TABLE IF NOT EXISTS patterns (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	set_name TEXT NOT NULL,
	raw TEXT NOT NULL,
	syntax TEXT NOT NULL DEFAULT 'field',
	wildcards INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	UNIQUE(set_name, raw)
);

CREATE INDEX IF NOT EXISTS idx_patterns_set ON patterns(set_name);
`

var (
	// ErrDuplicate is returned when a pattern already exists in a set.
	ErrDuplicate = errors.New("pattern already in set")

	// ErrNotFound is returned when a pattern or set does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSyntaxMismatch is returned when a pattern's syntax differs
	// from the set's established syntax.
	ErrSyntaxMismatch = errors.New("set uses a different syntax")
)

// Entry is a stored pattern row.
type Entry struct {
	ID        int64          `json:"-"`
	Set       string         `json:"set"`
	Raw       string         `json:"raw"`
	Syntax    pattern.Syntax `json:"syntax"`
	Wildcards int            `json:"wildcards"`
	CreatedAt time.Time      `json:"created_at"`
}

// DB wraps the SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &DB{db: db, path: path}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Add validates and inserts a pattern into a set. The first pattern in
// a set fixes the set's syntax; later additions must agree.
func (d *DB) Add(set, raw string, syntax pattern.Syntax) (*Entry, error) {
	e := Entry{Set: set, Syntax: syntax, CreatedAt: time.Now().UTC()}

	switch syntax {
	case pattern.SyntaxField:
		p, err := pattern.Parse(raw)
		if err != nil {
			return nil, err
		}
		e.Raw = p.Raw
		e.Wildcards = p.Wildcards
	case pattern.SyntaxGlob:
		g, err := pattern.ParseGlob(raw)
		if err != nil {
			return nil, err
		}
		e.Raw = g.Raw
	default:
		return nil, fmt.Errorf("unknown syntax %q", syntax)
	}

	existing, err := d.setSyntax(set)
	if err != nil {
		return nil, err
	}
	if existing != "" && existing != syntax {
		return nil, fmt.Errorf("%w: set %q is %s", ErrSyntaxMismatch, set, existing)
	}

	_, err = d.db.Exec(`
		INSERT INTO patterns (set_name, raw, syntax, wildcards, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.Set, e.Raw, e.Syntax, e.Wildcards, e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: %q in %q", ErrDuplicate, e.Raw, set)
		}
		return nil, fmt.Errorf("insert pattern: %w", err)
	}

	return &e, nil
}

// Remove deletes a pattern from a set.
func (d *DB) Remove(set, raw string) error {
	result, err := d.db.Exec(`DELETE FROM patterns WHERE set_name = ? AND raw = ?`, set, raw)
	if err != nil {
		return fmt.Errorf("delete pattern: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %q in %q", ErrNotFound, raw, set)
	}
	return nil
}

// List returns all patterns in a set in insertion order. An empty set
// name lists every set.
func (d *DB) List(set string) ([]*Entry, error) {
	query := `SELECT id, set_name, raw, syntax, wildcards, created_at FROM patterns`
	var args []interface{}
	if set != "" {
		query += ` WHERE set_name = ?`
		args = append(args, set)
	}
	query += ` ORDER BY id`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Set, &e.Raw, &e.Syntax, &e.Wildcards, &created); err != nil {
			return nil, fmt.Errorf("scan pattern: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Sets returns the names of all pattern sets.
func (d *DB) Sets() ([]string, error) {
	rows, err := d.db.Query(`SELECT DISTINCT set_name FROM patterns ORDER BY set_name`)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var sets []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// LoadSet returns a parsed, engine-ready pattern set.
func (d *DB) LoadSet(set string) (*pattern.Set, error) {
	entries, err := d.List(set)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: set %q", ErrNotFound, set)
	}

	raws := make([]string, 0, len(entries))
	for _, e := range entries {
		raws = append(raws, e.Raw)
	}
	return pattern.NewSet(entries[0].Syntax, raws)
}

// setSyntax returns the syntax of an existing set, or "" if the set is
// empty.
func (d *DB) setSyntax(set string) (pattern.Syntax, error) {
	var s string
	err := d.db.QueryRow(`SELECT syntax FROM patterns WHERE set_name = ? LIMIT 1`, set).Scan(&s)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("set syntax: %w", err)
	}
	return pattern.Syntax(s), nil
}
