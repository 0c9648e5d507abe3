package migration

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	Version string
	Name    string
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

type MigrationRecord struct {
	Version   string    `gorm:"primaryKey;size:32"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// Status reports whether a known migration has been applied.
type Status struct {
	Version   string
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

var ErrNoMigrationsApplied = errors.New("no migrations to revert")

var (
	globalMigrations = make([]*Migration, 0)
	registryMutex    sync.RWMutex
)

func RegisterMigration(migration *Migration) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	globalMigrations = append(globalMigrations, migration)
}

// GetRegisteredMigrations returns a copy of the registry sorted by version.
func GetRegisteredMigrations() []*Migration {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	migrations := make([]*Migration, len(globalMigrations))
	copy(migrations, globalMigrations)
	sortByVersion(migrations)
	return migrations
}

func ResetMigrations() {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	globalMigrations = make([]*Migration, 0)
}

// Validate checks a migration set for empty or duplicate versions and
// missing up/down functions.
func Validate(migrations []*Migration) error {
	var errs []error
	seen := make(map[string]bool, len(migrations))

	for _, m := range migrations {
		if m.Version == "" {
			errs = append(errs, fmt.Errorf("migration %q has no version", m.Name))
			continue
		}
		if seen[m.Version] {
			errs = append(errs, fmt.Errorf("duplicate migration version %s", m.Version))
		}
		seen[m.Version] = true
		if m.Up == nil {
			errs = append(errs, fmt.Errorf("migration %s has no up function", m.Version))
		}
		if m.Down == nil {
			errs = append(errs, fmt.Errorf("migration %s has no down function", m.Version))
		}
	}

	return errors.Join(errs...)
}

type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
	now        func() time.Time
}

// NewMigrator creates a migrator over the registered migrations.
func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: GetRegisteredMigrations(),
		now:        time.Now,
	}
}

func (m *Migrator) Register(migration *Migration) {
	m.migrations = append(m.migrations, migration)
	sortByVersion(m.migrations)
}

func (m *Migrator) Migrations() []*Migration {
	return m.migrations
}

// EnsureVersionTable creates the migration_records table if needed.
func (m *Migrator) EnsureVersionTable() error {
	return m.db.AutoMigrate(&MigrationRecord{})
}

func (m *Migrator) GetAppliedVersions() (map[string]MigrationRecord, error) {
	if err := m.EnsureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Find(&records).Error; err != nil {
		return nil, err
	}

	versions := make(map[string]MigrationRecord, len(records))
	for _, record := range records {
		versions[record.Version] = record
	}
	return versions, nil
}

// Pending lists the migrations not yet applied, in version order.
func (m *Migrator) Pending() ([]*Migration, error) {
	applied, err := m.GetAppliedVersions()
	if err != nil {
		return nil, err
	}

	var pending []*Migration
	for _, mr := range m.migrations {
		if _, ok := applied[mr.Version]; !ok {
			pending = append(pending, mr)
		}
	}
	return pending, nil
}

// Up applies every pending migration, each in its own transaction, and
// returns the ones applied. It stops at the first failure.
func (m *Migrator) Up() ([]*Migration, error) {
	if err := Validate(m.migrations); err != nil {
		return nil, err
	}

	pending, err := m.Pending()
	if err != nil {
		return nil, err
	}

	applied := make([]*Migration, 0, len(pending))
	for _, mr := range pending {
		if err := m.apply(mr); err != nil {
			return applied, err
		}
		applied = append(applied, mr)
	}
	return applied, nil
}

func (m *Migrator) apply(mr *Migration) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		if err := mr.Up(tx); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", mr.Name, err)
		}
		record := MigrationRecord{
			Version:   mr.Version,
			Name:      mr.Name,
			AppliedAt: m.now(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", mr.Name, err)
		}
		return nil
	})
}

// Down reverts the most recently applied migration.
func (m *Migrator) Down() (*Migration, error) {
	if err := m.EnsureVersionTable(); err != nil {
		return nil, err
	}

	var lastRecord MigrationRecord
	err := m.db.Order("applied_at DESC").Order("version DESC").First(&lastRecord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoMigrationsApplied
	}
	if err != nil {
		return nil, err
	}

	var target *Migration
	for _, mr := range m.migrations {
		if mr.Version == lastRecord.Version {
			target = mr
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("migration for version %s not found", lastRecord.Version)
	}

	if err := m.revert(target, lastRecord); err != nil {
		return nil, err
	}
	return target, nil
}

func (m *Migrator) revert(mr *Migration, record MigrationRecord) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		if err := mr.Down(tx); err != nil {
			return fmt.Errorf("failed to revert migration %s: %w", mr.Name, err)
		}
		if err := tx.Delete(&record).Error; err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
}

// Status lists every known migration with its applied state.
func (m *Migrator) Status() ([]Status, error) {
	applied, err := m.GetAppliedVersions()
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(m.migrations))
	for _, mr := range m.migrations {
		s := Status{Version: mr.Version, Name: mr.Name}
		if record, ok := applied[mr.Version]; ok {
			at := record.AppliedAt
			s.Applied = true
			s.AppliedAt = &at
		}
		out = append(out, s)
	}
	return out, nil
}

// History returns the applied records, most recent first.
func (m *Migrator) History() ([]MigrationRecord, error) {
	if err := m.EnsureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Order("applied_at DESC").Order("version DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func sortByVersion(migrations []*Migration) {
	sort.SliceStable(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
}

// ModelRegistry - users must implement this
type ModelRegistry interface {
	GetModels() map[string]interface{}
}

// Global registry - users set this in their main.go
var GlobalModelRegistry ModelRegistry

// Validate that registry is provided
func ValidateRegistry() error {
	if GlobalModelRegistry == nil {
		return fmt.Errorf("no model registry provided. Please implement migration.ModelRegistry and set it in your main.go")
	}
	return nil
}
