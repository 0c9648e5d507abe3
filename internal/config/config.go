package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beesaferoot/gorm-bookings/pricing"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds runtime settings read from the environment.
type Config struct {
	DatabaseDriver  string
	DatabaseURL     string
	DefaultCurrency string
	DefaultUnit     pricing.Unit
	Location        *time.Location
	MaxUnits        int
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	MigrationsPath  string
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables, applying defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseDriver:  strings.ToLower(getenv("DATABASE_DRIVER", DriverPostgres)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DefaultCurrency: strings.ToUpper(getenv("BOOKINGS_DEFAULT_CURRENCY", "USD")),
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "console"),
		MigrationsPath:  getenv("MIGRATIONS_PATH", "migrations"),
	}

	switch cfg.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	unit, err := pricing.ParseUnit(getenv("BOOKINGS_DEFAULT_UNIT", string(pricing.UnitDay)))
	if err != nil {
		return Config{}, fmt.Errorf("invalid BOOKINGS_DEFAULT_UNIT: %w", err)
	}
	cfg.DefaultUnit = unit

	loc, err := time.LoadLocation(getenv("BOOKINGS_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid BOOKINGS_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	maxUnits, err := strconv.Atoi(getenv("BOOKINGS_MAX_UNITS", "527040"))
	if err != nil || maxUnits <= 0 {
		return Config{}, fmt.Errorf("invalid BOOKINGS_MAX_UNITS %q", os.Getenv("BOOKINGS_MAX_UNITS"))
	}
	cfg.MaxUnits = maxUnits

	return cfg, nil
}

// Dialector returns the GORM dialector for the configured driver.
func (c Config) Dialector() (gorm.Dialector, error) {
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set in environment or .env file")
	}
	switch c.DatabaseDriver {
	case DriverSQLite:
		return sqlite.Open(c.DatabaseURL), nil
	default:
		return postgres.Open(c.DatabaseURL), nil
	}
}

// OpenDB connects to the configured database.
func (c Config) OpenDB(debug bool) (*gorm.DB, error) {
	dialector, err := c.Dialector()
	if err != nil {
		return nil, err
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
