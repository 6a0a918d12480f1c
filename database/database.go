package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB is the process-wide mongo handle. It is constructed once in main and
// injected into the stores; there is no lazily-initialized package global.
type DB struct {
	Client    *mongo.Client
	Users     *mongo.Collection
	Clubs     *mongo.Collection
	Posts     *mongo.Collection
	Questions *mongo.Collection
	Items     *mongo.Collection
}

// Connect dials mongo at uri and pings it before returning a handle.
func Connect(ctx context.Context, uri, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	return &DB{
		Client:    client,
		Users:     db.Collection("users"),
		Clubs:     db.Collection("clubs"),
		Posts:     db.Collection("posts"),
		Questions: db.Collection("questions"),
		Items:     db.Collection("items"),
	}, nil
}

// Close disconnects the underlying client.
func (db *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return db.Client.Disconnect(ctx)
}
