package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoDatabase connects to MongoDB and verifies the connection with a ping.
func NewMongoDatabase(ctx context.Context, url, dbName string) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(url).
		SetMaxPoolSize(10).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(dbName), nil
}

// Close disconnects the client backing the given database.
func Close(ctx context.Context, database *mongo.Database) error {
	if database == nil {
		return nil
	}
	return database.Client().Disconnect(ctx)
}
