package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/sales-analytics/pkg/config"
	"github.com/angelmondragon/sales-analytics/pkg/db"
	"github.com/angelmondragon/sales-analytics/pkg/db/models"
	"github.com/angelmondragon/sales-analytics/pkg/logger"
)

// MaybeRunDev prepares the ledger schema when running in dev with auto-migrate
// enabled. SQLite databases are migrated from the models, Postgres through goose.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.App.AutoMigrate {
		return nil
	}

	meta := map[string]any{"env": cfg.App.Env, "driver": cfg.DB.Driver}
	ctx = logg.WithFields(ctx, meta)

	if cfg.DB.IsSQLite() {
		logg.Info(ctx, "running model auto-migration (sqlite)")
		if err := client.DB().WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto-migrating models: %w", err)
		}
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithField(ctx, "dir", DefaultDir)
	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}
