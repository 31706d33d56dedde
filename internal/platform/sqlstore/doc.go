// Package sqlstore implements the store interfaces on database/sql for both
// SQLite (modernc.org/sqlite, the default) and PostgreSQL (pgx stdlib).
//
// Queries are written once with '?' placeholders and rebound per dialect.
// The schema is embedded and applied with goose.
package sqlstore
