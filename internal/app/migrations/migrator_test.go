package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/yigit/coursemanager/internal/app/repositories"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestMigrateSQLite(t *testing.T) {
	ctx := context.Background()
	database := openMemoryDB(t)
	m := NewMigrator(database, repositories.DialectSQLite)

	require.NoError(t, m.Migrate(ctx))
	// Second run only skips
	require.NoError(t, m.Migrate(ctx))

	var versions int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&versions))
	assert.Equal(t, 1, versions)

	for _, table := range []string{"departments", "courses", "students", "enrollments"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrateUnknownDialect(t *testing.T) {
	m := NewMigrator(openMemoryDB(t), repositories.Dialect("oracle"))
	err := m.Migrate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestBundledMigrationsMatchAcrossDialects(t *testing.T) {
	pg, err := embedded.ReadDir("postgres")
	require.NoError(t, err)
	lite, err := embedded.ReadDir("sqlite")
	require.NoError(t, err)

	require.Equal(t, len(pg), len(lite))
	for i := range pg {
		assert.Equal(t, pg[i].Name(), lite[i].Name())
	}
}
