package sqlstore_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/platform/sqlstore"
	"github.com/stretchr/testify/require"
)

// openTestDB opens a migrated SQLite database in a temporary directory.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	log, _ := logger.NewTestLogger(t)
	url := "file:" + filepath.Join(t.TempDir(), "test.db")

	db, err := sqlstore.Open(context.Background(), sqlstore.DialectSQLite, url, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlstore.Migrate(context.Background(), db, sqlstore.DialectSQLite, sqlstore.MigrateUp, log))
	return db
}
