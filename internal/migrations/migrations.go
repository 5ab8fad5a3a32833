// Package migrations applies the ledger schema, either from the embedded
// goose SQL files (postgres) or through GORM AutoMigrate.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/model"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var Migrations embed.FS

const migrationsDir = "sql"

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Run migrates the schema according to mode (config.MigrateGoose,
// config.MigrateAuto or config.MigrateOff).
func Run(ctx context.Context, db *gorm.DB, mode string) error {
	switch mode {
	case config.MigrateOff:
		slog.Info("schema migrations disabled")
		return nil
	case config.MigrateAuto:
		if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	case config.MigrateGoose:
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		goose.SetBaseFS(Migrations)
		if err := goose.SetDialect("postgres"); err != nil {
			return err
		}
		if err := gooseUpContext(ctx, sqlDB, migrationsDir); err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown migration mode %q", mode)
	}
}
