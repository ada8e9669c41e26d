package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens a MongoDB client, verifies it with a ping and returns the
// named database.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connection failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	slog.Info("connected to mongodb", "database", dbName)
	return client.Database(dbName), nil
}

func Disconnect(ctx context.Context, database *mongo.Database) error {
	if err := database.Client().Disconnect(ctx); err != nil {
		return fmt.Errorf("closing mongodb connection: %w", err)
	}
	slog.Info("mongodb connection closed")
	return nil
}
