package migration

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
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

func createTable(name string) *Migration {
	return &Migration{
		Name: "create_" + name,
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE " + name + " (id INTEGER PRIMARY KEY)").Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec("DROP TABLE " + name).Error
		},
	}
}

func versioned(version string, m *Migration) *Migration {
	m.Version = version
	return m
}

func hasTable(t *testing.T, db *gorm.DB, name string) bool {
	var count int64
	err := db.Raw("SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count).Error
	require.NoError(t, err)
	return count == 1
}

func newTestMigrator(db *gorm.DB, migrations ...*Migration) *Migrator {
	clock := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	m := &Migrator{db: db, now: func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}}
	for _, mr := range migrations {
		m.Register(mr)
	}
	return m
}

func TestMigrator_Up(t *testing.T) {
	db := setupTestDB(t)
	migrator := newTestMigrator(db,
		versioned("20240315000002", createTable("second")),
		versioned("20240315000001", createTable("first")),
	)

	applied, err := migrator.Up()
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.Equal(t, "create_first", applied[0].Name)

	var record MigrationRecord
	require.NoError(t, db.Where("version = ?", "20240315000001").First(&record).Error)
	assert.Equal(t, "create_first", record.Name)
	assert.True(t, hasTable(t, db, "first"))
	assert.True(t, hasTable(t, db, "second"))

	applied, err = migrator.Up()
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestMigrator_UpStopsAtFailure(t *testing.T) {
	db := setupTestDB(t)
	broken := &Migration{
		Version: "20240315000002",
		Name:    "broken",
		Up: func(db *gorm.DB) error {
			if err := db.Exec("CREATE TABLE half (id INTEGER)").Error; err != nil {
				return err
			}
			return errors.New("boom")
		},
		Down: noop,
	}
	migrator := newTestMigrator(db, versioned("20240315000001", createTable("first")), broken)

	applied, err := migrator.Up()
	assert.ErrorContains(t, err, "failed to apply migration broken")
	assert.Len(t, applied, 1)
	assert.False(t, hasTable(t, db, "half"))

	pending, err := migrator.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "broken", pending[0].Name)
}

func TestMigrator_UpRejectsInvalidSet(t *testing.T) {
	db := setupTestDB(t)
	migrator := newTestMigrator(db,
		versioned("1", createTable("a")),
		versioned("1", createTable("b")),
	)

	_, err := migrator.Up()
	assert.ErrorContains(t, err, "duplicate migration version")
}

func TestMigrator_Down(t *testing.T) {
	db := setupTestDB(t)
	migrator := newTestMigrator(db,
		versioned("20240315000001", createTable("first")),
		versioned("20240315000002", createTable("second")),
	)
	_, err := migrator.Up()
	require.NoError(t, err)

	reverted, err := migrator.Down()
	require.NoError(t, err)
	assert.Equal(t, "create_second", reverted.Name)
	assert.False(t, hasTable(t, db, "second"))
	assert.True(t, hasTable(t, db, "first"))

	var record MigrationRecord
	assert.Error(t, db.Where("version = ?", "20240315000002").First(&record).Error)

	_, err = migrator.Down()
	require.NoError(t, err)

	_, err = migrator.Down()
	assert.ErrorIs(t, err, ErrNoMigrationsApplied)
}

func TestMigrator_StatusAndHistory(t *testing.T) {
	db := setupTestDB(t)
	first := versioned("20240315000001", createTable("first"))
	migrator := newTestMigrator(db, first)
	_, err := migrator.Up()
	require.NoError(t, err)

	migrator.Register(versioned("20240315000002", createTable("second")))
	migrator.Register(versioned("20240315000003", createTable("third")))
	_, err = migrator.Up()
	require.NoError(t, err)
	_, err = migrator.Down()
	require.NoError(t, err)

	status, err := migrator.Status()
	require.NoError(t, err)
	require.Len(t, status, 3)
	assert.True(t, status[0].Applied)
	assert.NotNil(t, status[0].AppliedAt)
	assert.True(t, status[1].Applied)
	assert.False(t, status[2].Applied)
	assert.Nil(t, status[2].AppliedAt)

	history, err := migrator.History()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "20240315000002", history[0].Version)
	assert.Equal(t, "20240315000001", history[1].Version)
}

func newMockMigrator(t *testing.T) (*Migrator, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return newTestMigrator(db), mock
}

func TestMigrator_ApplyCommitsOnPostgres(t *testing.T) {
	migrator, mock := newMockMigrator(t)
	mr := versioned("20240315000001", createTable("widgets"))

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE widgets`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "migration_records"`).
		WithArgs("20240315000001", "create_widgets", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, migrator.apply(mr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_ApplyRollsBackOnPostgres(t *testing.T) {
	migrator, mock := newMockMigrator(t)
	mr := versioned("20240315000001", createTable("widgets"))

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE widgets`).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err := migrator.apply(mr)
	assert.ErrorContains(t, err, "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_RevertRollsBackOnPostgres(t *testing.T) {
	migrator, mock := newMockMigrator(t)
	mr := versioned("20240315000001", createTable("widgets"))

	mock.ExpectBegin()
	mock.ExpectExec(`DROP TABLE widgets`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "migration_records"`).WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err := migrator.revert(mr, MigrationRecord{Version: mr.Version, Name: mr.Name})
	assert.ErrorContains(t, err, "failed to remove migration record")
	assert.NoError(t, mock.ExpectationsWereMet())
}
