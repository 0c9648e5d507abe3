package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beesaferoot/gorm-bookings/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestDrift_MissingTables(t *testing.T) {
	db := openTestDB(t)
	tables, err := TablesFromRegistry(models.ModelTypeRegistry)
	require.NoError(t, err)

	drifts, err := Drift(db, tables)
	require.NoError(t, err)
	require.Len(t, drifts, len(models.All()))
	for _, d := range drifts {
		assert.True(t, d.Missing, d.Table)
	}
}

func TestDrift_UpToDate(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(models.All()...))

	tables, err := TablesFromRegistry(models.ModelTypeRegistry)
	require.NoError(t, err)

	drifts, err := Drift(db, tables)
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestDrift_Columns(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE bookable_rates (id integer primary key, bookable_id integer, legacy text)`).Error)

	table, err := CreateTableFromModel(models.BookableRate{})
	require.NoError(t, err)

	drifts, err := Drift(db, []*Table{table})
	require.NoError(t, err)
	require.Len(t, drifts, 1)

	d := drifts[0]
	assert.False(t, d.Missing)
	assert.Equal(t, []string{"legacy"}, d.ExtraColumns)
	assert.Contains(t, d.MissingColumns, "percentage")
	assert.Contains(t, d.MissingColumns, "operator")
	assert.NotContains(t, d.MissingColumns, "bookable_id")
	assert.False(t, d.IsEmpty())
}
