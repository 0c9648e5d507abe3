package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beesaferoot/gorm-bookings/migration"
	"github.com/beesaferoot/gorm-bookings/models"
)

type testRegistry struct{}

func (testRegistry) GetModels() map[string]interface{} {
	return models.ModelTypeRegistry
}

func useTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	previous := openDB
	openDB = func(bool) (*gorm.DB, error) { return db, nil }
	t.Cleanup(func() {
		openDB = previous
		_ = sqlDB.Close()
	})
	return db
}

func useMigrations(t *testing.T, migrations ...*migration.Migration) {
	migration.ResetMigrations()
	for _, m := range migrations {
		migration.RegisterMigration(m)
	}
	t.Cleanup(migration.ResetMigrations)
}

func tableMigration(version, table string) *migration.Migration {
	return &migration.Migration{
		Version: version,
		Name:    "create_" + table,
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE " + table + " (id INTEGER PRIMARY KEY)").Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec("DROP TABLE " + table).Error
		},
	}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func chdirTemp(t *testing.T) string {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestRegisterCmd(t *testing.T) {
	cmd := RegisterCmd()
	assert.Equal(t, "register [path]", cmd.Use)
	assert.Equal(t, "Generates model registry file", cmd.Short)
}

func TestInitCmd(t *testing.T) {
	cmd := InitCmd()
	assert.Equal(t, "init", cmd.Use)
	assert.Equal(t, "Initialize migration tracking table in the database", cmd.Short)
}

func TestCreateCmd(t *testing.T) {
	cmd := CreateCmd()
	assert.Equal(t, "create [name]", cmd.Use)
	assert.Equal(t, "Create a new migration file", cmd.Short)
}

func TestUpCmd(t *testing.T) {
	cmd := UpCmd()
	assert.Equal(t, "up", cmd.Use)
	assert.Equal(t, "Apply all pending migrations", cmd.Short)

	flags := cmd.Flags()
	assert.NotNil(t, flags.Lookup("dry-run"))
	assert.NotNil(t, flags.Lookup("debug"))
}

func TestDownCmd(t *testing.T) {
	cmd := DownCmd()
	assert.Equal(t, "down", cmd.Use)
	assert.Equal(t, "Revert the last migration", cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("debug"))
}

func TestStatusCmd(t *testing.T) {
	cmd := StatusCmd()
	assert.Equal(t, "status", cmd.Use)
	assert.Equal(t, "Show status of all migrations", cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("debug"))
}

func TestHistoryCmd(t *testing.T) {
	cmd := HistoryCmd()
	assert.Equal(t, "history", cmd.Use)
	assert.Equal(t, "Show migration history", cmd.Short)
}

func TestValidateCmd(t *testing.T) {
	cmd := ValidateCmd()
	assert.Equal(t, "validate", cmd.Use)
	assert.Equal(t, "Validate all migrations", cmd.Short)
}

func TestInitCmd_CreatesVersionTable(t *testing.T) {
	db := useTestDB(t)

	out, err := run(t, InitCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "initialized")
	assert.True(t, db.Migrator().HasTable(&migration.MigrationRecord{}))
}

func TestUpDownStatusHistory(t *testing.T) {
	db := useTestDB(t)
	useMigrations(t,
		tableMigration("20240101000001", "alpha"),
		tableMigration("20240101000002", "beta"),
	)

	out, err := run(t, UpCmd(), "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "- create_alpha (20240101000001)")
	assert.False(t, db.Migrator().HasTable("alpha"))

	out, err = run(t, UpCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully applied migration: create_beta")
	assert.True(t, db.Migrator().HasTable("beta"))

	out, err = run(t, UpCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "No pending migrations.")

	out, err = run(t, DownCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully reverted migration: create_beta")

	out, err = run(t, StatusCmd())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Applied")
	assert.Contains(t, lines[2], "Pending")

	out, err = run(t, HistoryCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "create_alpha")
	assert.NotContains(t, out, "create_beta")
}

func TestDownCmd_NothingApplied(t *testing.T) {
	useTestDB(t)
	useMigrations(t)

	_, err := run(t, DownCmd())
	assert.ErrorIs(t, err, migration.ErrNoMigrationsApplied)
}

func TestValidateCmd_Duplicates(t *testing.T) {
	useMigrations(t,
		tableMigration("20240101000001", "alpha"),
		tableMigration("20240101000001", "beta"),
	)
	migration.GlobalModelRegistry = testRegistry{}
	t.Cleanup(func() { migration.GlobalModelRegistry = nil })

	_, err := run(t, ValidateCmd())
	assert.ErrorContains(t, err, "duplicate migration version")
}

func TestTablesCmd(t *testing.T) {
	migration.GlobalModelRegistry = testRegistry{}
	t.Cleanup(func() { migration.GlobalModelRegistry = nil })

	out, err := run(t, TablesCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "bookable_bookings\n")
	assert.Contains(t, out, "decimal(10,2)")
}

func TestCheckCmd(t *testing.T) {
	db := useTestDB(t)
	migration.GlobalModelRegistry = testRegistry{}
	t.Cleanup(func() { migration.GlobalModelRegistry = nil })

	out, err := run(t, CheckCmd())
	assert.ErrorContains(t, err, "schema drift in 9 table(s)")
	assert.Contains(t, out, "bookables: table missing")

	require.NoError(t, db.AutoMigrate(models.All()...))
	out, err = run(t, CheckCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date.")
}

func TestCreateCmd_WritesMigration(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("MIGRATIONS_PATH", "db/migrations")

	out, err := run(t, CreateCmd(), "AddGuestCount")
	require.NoError(t, err)
	assert.Contains(t, out, "Created migration")

	files, err := filepath.Glob(filepath.Join(dir, "db", "migrations", "*_add_guest_count.go"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), `Name:    "add_guest_count"`)
	assert.Contains(t, string(content), "migration.RegisterMigration")
}

func TestCreateCmd_RejectsPathOutsideWorkingDir(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MIGRATIONS_PATH", "../elsewhere")

	_, err := run(t, CreateCmd(), "x")
	assert.ErrorContains(t, err, "within working directory")
}

func TestRegisterCmd_GeneratesRegistry(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "models"), 0755))
	src := `package models

import "gorm.io/gorm"

type Room struct {
	gorm.Model
	Name string
}

type Desk struct {
	gorm.Model
}

type notAModel struct {
	Name string
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models", "rooms.go"), []byte(src), 0644))

	_, err := run(t, RegisterCmd())
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "models", registryFile))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"Desk": Desk{},`)
	assert.Contains(t, string(content), `"Room": Room{},`)
	assert.NotContains(t, string(content), "notAModel")
	assert.Less(t, strings.Index(string(content), "Desk"), strings.Index(string(content), "Room"))
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "add_guest_count", toSnakeCase("AddGuestCount"))
	assert.Equal(t, "add_guest_count", toSnakeCase("add-guest count"))
}
