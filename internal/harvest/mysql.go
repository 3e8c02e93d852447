package harvest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLSource implements Source for MySQL databases.
type MySQLSource struct {
	db *sql.DB
}

// Connect opens a connection to a MySQL database. It strips the
// "mysql://" prefix if present, since go-sql-driver expects DSN format.
func (m *MySQLSource) Connect(connStr string) error {
	dsn := strings.TrimPrefix(connStr, "mysql://")
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("mysql open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("mysql ping: %w", err)
	}
	m.db = db
	return nil
}

// Fetch returns the first column of every row the query produces.
func (m *MySQLSource) Fetch(ctx context.Context, query string) ([]string, error) {
	return fetchColumn(ctx, m.db, query)
}

// Close closes the database connection.
func (m *MySQLSource) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}
