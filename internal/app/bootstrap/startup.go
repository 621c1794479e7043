// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/engine"
	goalconfigstore "github.com/salespulse/salespulse/internal/app/store/goalconfig"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. SalesPulse
// seeds the goal configuration for every built-in team; seeding is insert-only
// so admin edits survive restarts.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if applied := timeouts.ConfigureFromEnv(); applied > 0 {
		logger.Info("applied timeout overrides from environment", zap.Int("count", applied))
	}

	seeded, err := goalconfigstore.New(deps.MongoDatabase).SeedDefaults(ctx, engine.DefaultConfigs())
	if err != nil {
		logger.Error("goal config seeding failed", zap.Error(err))
		return err
	}
	if seeded > 0 {
		logger.Info("seeded default goal configs", zap.Int("teams", seeded))
	}
	return nil
}
