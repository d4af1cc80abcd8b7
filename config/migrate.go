package config

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"quotedesk-backend/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrate brings the schema up to date. Postgres runs the embedded goose
// migrations; SQLite (local development and tests) uses gorm AutoMigrate.
func Migrate(ctx context.Context, db *gorm.DB, driver string) error {
	log := zerolog.Ctx(ctx)

	if driver == DriverSQLite {
		if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto-migrating sqlite schema: %w", err)
		}
		log.Info().Msg("sqlite schema migrated")
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(DriverPostgres); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	log.Info().Int64("version", version).Msg("goose migrations applied")
	return nil
}
