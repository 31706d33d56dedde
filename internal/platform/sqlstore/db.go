package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// Dialect identifies the SQL flavour behind a *sql.DB.
type Dialect string

// Supported dialects, matching config.DatabaseConfig.Driver.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect validates a configured driver name.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(name) {
	case DialectSQLite, DialectPostgres:
		return Dialect(name), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}

func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// gooseDialect is the dialect name goose expects.
func (d Dialect) gooseDialect() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// Rebind rewrites '?' placeholders into the dialect's native form.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Open connects to the database at url and verifies the connection.
// SQLite connections get foreign keys enabled and a single writer connection.
func Open(ctx context.Context, dialect Dialect, url string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dsn := url
	if dialect == DialectSQLite {
		dsn = withSQLitePragmas(url)
	}

	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if dialect == DialectSQLite {
		// SQLite serialises writers; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.InfoContext(ctx, "Database connection established", "dialect", string(dialect))
	return db, nil
}

// withSQLitePragmas enables foreign keys (needed for ON DELETE CASCADE) and
// makes the driver store timestamps in a sortable format.
func withSQLitePragmas(url string) string {
	params := make([]string, 0, 2)
	if !strings.Contains(url, "foreign_keys") {
		params = append(params, "_pragma=foreign_keys(1)")
	}
	if !strings.Contains(url, "_time_format") {
		params = append(params, "_time_format=sqlite")
	}
	if len(params) == 0 {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + strings.Join(params, "&")
}
