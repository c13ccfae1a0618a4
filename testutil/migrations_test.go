package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaccharietardy-dotcom/voyage-planner/migrations"
	"github.com/zaccharietardy-dotcom/voyage-planner/testutil"
)

// TestMigrations walks the embedded migrations through a full cycle against
// a real Postgres: up from zero, re-run up (must be a no-op), then down to
// zero again, checking the trips and intent_logs tables appear and vanish
// at the right points. Skipped when TEST_DATABASE_URL is not set.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(
		goose.DialectPostgres,
		db,
		migrations.FS,
	)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// Another package's TestMain may already have migrated this shared DB.
	// Start from version 0 so the test means the same thing alone or in the
	// full suite.
	if _, err := provider.DownTo(ctx, 0); err != nil {
		t.Fatalf("TestMigrations: initial reset: %v", err)
	}

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")

	for _, table := range []string{"trips", "intent_logs"} {
		assertTableExists(t, db, table)
	}

	// A second up on a current schema must apply nothing. The server runs
	// migrations on every start, so this is the restart path.
	results, err = provider.Up(ctx)
	require.NoError(t, err, "goose up on migrated schema")
	assert.Empty(t, results, "re-running up should apply no migrations")

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")

	for _, table := range []string{"trips", "intent_logs"} {
		assertTableNotExists(t, db, table)
	}
}

func assertTableExists(t *testing.T, db *sql.DB, table string) {
	t.Helper()
	assertTablePresence(t, db, table, true)
}

func assertTableNotExists(t *testing.T, db *sql.DB, table string) {
	t.Helper()
	assertTablePresence(t, db, table, false)
}

// assertTablePresence asks information_schema rather than pg_catalog so the
// query stays readable; both see the public schema the migrations write to.
func assertTablePresence(t *testing.T, db *sql.DB, table string, shouldExist bool) {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	err := db.QueryRowContext(context.Background(), q, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)

	if shouldExist {
		assert.True(t, exists, "expected table %q to exist", table)
	} else {
		assert.False(t, exists, "expected table %q to not exist", table)
	}
}
