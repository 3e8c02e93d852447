// Package harvest bulk-loads patterns or paths from live SQL databases.
package harvest

import (
	"context"
	"fmt"
)

// Source connects to a database and fetches a single string column.
type Source interface {
	// Connect establishes a connection to the database.
	Connect(connStr string) error
	// Fetch runs the query and returns the first column of every row
	// as strings.
	Fetch(ctx context.Context, query string) ([]string, error)
	// Close closes the database connection.
	Close() error
}

// ForDriver returns a Source for the named driver.
func ForDriver(driver string) (Source, error) {
	switch driver {
	case "postgres":
		return &PostgresSource{}, nil
	case "mysql":
		return &MySQLSource{}, nil
	case "sqlite":
		return &SQLiteSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q (postgres, mysql, sqlite)", driver)
	}
}

// DefaultEnvVar returns the conventional env var holding the
// connection string for a driver.
func DefaultEnvVar(driver string) string {
	switch driver {
	case "postgres":
		return "WILDPATH_POSTGRES_URL"
	case "mysql":
		return "WILDPATH_MYSQL_URL"
	case "sqlite":
		return "WILDPATH_SQLITE_PATH"
	default:
		return ""
	}
}
