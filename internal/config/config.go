// Package config loads runtime settings from the environment (optionally
// seeded from a .env file) on top of development defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	MigrateGoose = "goose"
	MigrateAuto  = "auto"
	MigrateOff   = "off"
)

type Config struct {
	AppName  string
	Port     string
	LogLevel string

	Database Database

	JWTSecret     string
	SessionTTL    time.Duration
	SessionCookie string

	// RateLimitMax is the number of auth requests per minute and client; 0 disables it.
	RateLimitMax int
}

type Database struct {
	Driver  string
	DSN     string
	Migrate string
}

// LoadDefaults populates Config with development defaults.
// NOTE: JWTSecret must be overridden in production.
func (c *Config) LoadDefaults() {
	c.AppName = "Inventory Ledger v1.0"
	c.Port = "3000"
	c.LogLevel = "info"
	c.Database = Database{
		Driver:  DriverSQLite,
		DSN:     "app.db",
		Migrate: MigrateAuto,
	}
	c.JWTSecret = "your-super-secret-key-change-in-production"
	c.SessionTTL = 24 * time.Hour
	c.SessionCookie = "session"
	c.RateLimitMax = 20
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, relying on system env")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from defaults overlaid with values returned by getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	setString(&cfg.AppName, getenv("APP_NAME"))
	setString(&cfg.Port, getenv("PORT"))
	setString(&cfg.LogLevel, getenv("LOG_LEVEL"))
	setString(&cfg.JWTSecret, getenv("JWT_SECRET"))
	setString(&cfg.SessionCookie, getenv("SESSION_COOKIE"))

	if v := getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		cfg.SessionTTL = d
	}
	if v := getenv("RATE_LIMIT_MAX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_MAX %q", v)
		}
		cfg.RateLimitMax = n
	}

	if err := cfg.Database.fromEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (d *Database) fromEnv(getenv func(string) string) error {
	// Postgres is selected whenever connection settings are present;
	// otherwise the local SQLite file is used.
	if dsn := getenv("DATABASE_URL"); dsn != "" {
		d.Driver = DriverPostgres
		d.DSN = dsn
		d.Migrate = MigrateGoose
	} else if host := getenv("DB_HOST"); host != "" {
		d.Driver = DriverPostgres
		d.DSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			host,
			getenv("DB_USER"),
			getenv("DB_PASSWORD"),
			getenv("DB_NAME"),
			getenv("DB_PORT"),
		)
		d.Migrate = MigrateGoose
	}

	if v := getenv("DB_DRIVER"); v != "" {
		if v != DriverPostgres && v != DriverSQLite {
			return fmt.Errorf("unsupported DB_DRIVER %q", v)
		}
		d.Driver = v
	}
	if v := getenv("SQLITE_PATH"); v != "" && d.Driver == DriverSQLite {
		d.DSN = v
	}
	if v := getenv("DB_MIGRATE"); v != "" {
		switch v {
		case MigrateGoose, MigrateAuto, MigrateOff:
			d.Migrate = v
		default:
			return fmt.Errorf("unsupported DB_MIGRATE %q", v)
		}
	}
	if d.Driver == DriverSQLite && d.Migrate == MigrateGoose {
		// embedded migrations are written for postgres
		return fmt.Errorf("DB_MIGRATE=goose requires DB_DRIVER=postgres")
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
