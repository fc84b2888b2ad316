package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobber-ats/core/internal/config"
	"github.com/jobber-ats/core/internal/platform/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// RunMigrations executes database migrations
func RunMigrations(ctx context.Context, cfg config.StorageConfig, log *logger.Logger, migrationsPath string) error {
	log.Info("starting database migrations", zap.String("path", migrationsPath))

	sourceURL := fmt.Sprintf("file://%s", migrationsPath)

	databaseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		log.Error("failed to create migrator", zap.Error(err))
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("database schema is already up to date")
			return nil
		}

		version, dirty, vErr := m.Version()
		if vErr != nil {
			log.Error("failed to get migration version", zap.Error(vErr))
		} else {
			log.Error("migration failed",
				zap.Error(err),
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}

		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		log.Warn("could not get migration version after completion", zap.Error(err))
	} else {
		log.Info("database migrations completed successfully",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
	}

	return nil
}
