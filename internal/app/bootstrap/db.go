// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	auditstore "github.com/salespulse/salespulse/internal/app/store/audit"
	goalconfigstore "github.com/salespulse/salespulse/internal/app/store/goalconfig"
	uploadstore "github.com/salespulse/salespulse/internal/app/store/uploads"
)

// ConnectDB establishes the MongoDB connection used for local state (goal
// configs, upload history, audit events). Report records live in the
// provider's collections and are not touched here.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		logger.Error("mongo connect failed", zap.Error(err))
		return DBDeps{}, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("mongo ping failed", zap.Error(err))
		return DBDeps{}, err
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes the local stores rely on.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := goalconfigstore.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := uploadstore.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		return err
	}
	return auditstore.New(deps.MongoDatabase).EnsureIndexes(ctx)
}
