package harvest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSource implements Source for SQLite databases.
type SQLiteSource struct {
	db *sql.DB
}

// Connect opens a read-only connection to the SQLite database at
// connStr.
func (s *SQLiteSource) Connect(connStr string) error {
	// Ensure read-only mode.
	dsn := connStr
	if strings.Contains(dsn, "?") {
		dsn += "&mode=ro"
	} else {
		dsn += "?mode=ro"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("sqlite open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("sqlite ping: %w", err)
	}
	s.db = db
	return nil
}

// Fetch returns the first column of every row the query produces.
func (s *SQLiteSource) Fetch(ctx context.Context, query string) ([]string, error) {
	return fetchColumn(ctx, s.db, query)
}

// Close closes the database connection.
func (s *SQLiteSource) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
