package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// Connect creates a connection to the MongoDB instance at uri, verifies it with
// a ping and returns the named database.
func Connect(ctx context.Context, uri, name string, logger *slog.Logger) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Error("failed to ping database", slog.String("error", err.Error()))
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client.Database(name), nil
}

// EnsureIndexes creates the indexes the user store relies on. The unique email
// index is what enforces email uniqueness under concurrent writers.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(usersCollection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("users_email_key").SetUnique(true),
		},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}
