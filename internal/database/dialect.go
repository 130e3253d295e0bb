package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect abstracts over the supported database engines. The repositories
// write queries with ? placeholders; each dialect rewrites them as needed.
type Dialect interface {
	// DriverName returns the driver name for sql.Open.
	DriverName() string

	// DSN builds the data source name from the connection config.
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g. ? to $1).
	RewriteQuery(query string) string

	// SupportsLastInsertId reports whether the driver implements
	// Result.LastInsertId; PostgreSQL needs a RETURNING clause instead.
	SupportsLastInsertId() bool

	// ConfigureConnection applies engine-specific connection settings.
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir names the per-engine migrations directory.
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL for the migrations
	// tracking table.
	CreateMigrationsTableQuery() string
}

// DialectConfig holds connection parameters. Path is used by SQLite, URL by
// PostgreSQL and MySQL.
type DialectConfig struct {
	Path string
	URL  string
}

var placeholderPattern = regexp.MustCompile(`\?`)

// numberPlaceholders converts ? placeholders to $1, $2, ...
func numberPlaceholders(query string) string {
	n := 0
	return placeholderPattern.ReplaceAllStringFunc(query, func(string) string {
		n++
		return "$" + strconv.Itoa(n)
	})
}
