package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/internal/config"
	"github.com/beesaferoot/gorm-bookings/migration"
)

// openDB is replaced in tests.
var openDB = func(debug bool) (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg.OpenDB(debug)
}

func getMigrator(debug bool) (*migration.Migrator, error) {
	db, err := openDB(debug)
	if err != nil {
		return nil, err
	}
	return migration.NewMigrator(db), nil
}

func validateMigrationsPath(path string) (string, error) {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("invalid migrations path: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %v", err)
	}

	if absPath != wd && !strings.HasPrefix(absPath, wd+string(filepath.Separator)) {
		return "", fmt.Errorf("migrations path must be within working directory")
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return "", fmt.Errorf("migrations path is not writable: %v", err)
	}

	return absPath, nil
}

func getMigrationsDir() string {
	cfg, err := config.Load()
	if err != nil {
		return "migrations"
	}
	return cfg.MigrationsPath
}

func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		case r == '-' || r == ' ':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
