// Package db provides the process-wide MongoDB client, initialized once at
// startup and shared by all request handlers.
package db

import (
	"context"
	"time"

	"github.com/smallbiznis/motorpool/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the MongoDB client and database handle.
var Module = fx.Module("db",
	fx.Provide(NewClient),
	fx.Provide(NewDatabase),
)

// NewClient connects to MongoDB and registers lifecycle hooks.
func NewClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
				log.Warn("mongodb not reachable at startup", zap.Error(err))
				return nil
			}
			log.Info("mongodb connected", zap.String("database", cfg.MongoDatabase))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return client, nil
}

// NewDatabase returns the application database handle.
func NewDatabase(client *mongo.Client, cfg config.Config) *mongo.Database {
	return client.Database(cfg.MongoDatabase)
}
