package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/pkg/database"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Options{Driver: database.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestRun_AutoCreatesAllTables(t *testing.T) {
	db := newMemoryDB(t)

	require.NoError(t, Run(context.Background(), db, config.MigrateAuto))

	for _, m := range model.All() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}
}

func TestRun_OffLeavesSchemaUntouched(t *testing.T) {
	db := newMemoryDB(t)

	require.NoError(t, Run(context.Background(), db, config.MigrateOff))

	assert.False(t, db.Migrator().HasTable(&model.Stock{}))
}

func TestRun_GooseUsesEmbeddedDir(t *testing.T) {
	db := newMemoryDB(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Run(context.Background(), db, config.MigrateGoose))
	assert.Equal(t, "sql", gotDir)
}

func TestRun_UnknownMode(t *testing.T) {
	db := newMemoryDB(t)
	assert.Error(t, Run(context.Background(), db, "sideways"))
}

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(Migrations, "sql/*.sql")
	require.NoError(t, err)
	assert.Contains(t, files, "sql/00001_init.sql")
}
