package harvest

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresSource implements Source for PostgreSQL databases.
type PostgresSource struct {
	db *sql.DB
}

// Connect opens a connection to the PostgreSQL database and verifies it
// with a ping.
func (p *PostgresSource) Connect(connStr string) error {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("postgres open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("postgres ping: %w", err)
	}
	p.db = db
	return nil
}

// Fetch returns the first column of every row the query produces.
func (p *PostgresSource) Fetch(ctx context.Context, query string) ([]string, error) {
	return fetchColumn(ctx, p.db, query)
}

// Close closes the database connection.
func (p *PostgresSource) Close() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}
