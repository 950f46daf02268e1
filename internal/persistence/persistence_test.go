package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/roster-service/internal/config"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := NewSQLite(context.Background(), config.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "roster.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestLoadMigrations(t *testing.T) {
	for _, driver := range []string{"postgres", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			migrations, err := loadMigrations(driver)
			require.NoError(t, err)
			require.NotEmpty(t, migrations)
			assert.Equal(t, "0001_roster.sql", migrations[0].name)
			assert.Contains(t, migrations[0].sql, "CREATE TABLE IF NOT EXISTS employees")
		})
	}

	_, err := loadMigrations("oracle")
	assert.Error(t, err)
}

func TestRunSQLiteMigrationsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestSQLite(t)

	require.NoError(t, RunSQLiteMigrations(ctx, db.DB, zap.NewNop()))
	require.NoError(t, RunSQLiteMigrations(ctx, db.DB, zap.NewNop()))

	var count int
	require.NoError(t, db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 1, count)

	for _, table := range []string{"teams", "employees"} {
		var name string
		err := db.DB.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, table, name)
	}
}

func TestSQLiteEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	db := openTestSQLite(t)
	require.NoError(t, RunSQLiteMigrations(ctx, db.DB, zap.NewNop()))

	_, err := db.DB.ExecContext(ctx,
		`INSERT INTO employees (id, name, name_key, cost, team_id, created_at, updated_at)
		 VALUES ('e1', 'Ann', 'ann', '100', 'missing-team', 0, 0)`)
	assert.Error(t, err)
	assert.NoError(t, db.Ping(ctx))
}

func TestNewSQLiteRequiresPath(t *testing.T) {
	_, err := NewSQLite(context.Background(), config.SQLiteConfig{Path: "  "}, zap.NewNop())
	assert.Error(t, err)
}

func TestDisabledRedis(t *testing.T) {
	r := NewRedis(config.RedisConfig{Enabled: false}, zap.NewNop())
	assert.False(t, r.Enabled())
	assert.Error(t, r.Ping(context.Background()))
	assert.NoError(t, r.Publish(context.Background(), "roster.events", []byte("{}")))
	r.Close()
}
