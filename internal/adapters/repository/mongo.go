// Package repository contains the MongoDB persistence adapters for the core
// ports. Each adapter decodes straight into the domain types via their bson
// tags; driver "no documents" errors are translated to domain.ErrNotFound at
// this boundary.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout = 10 * time.Second
	maxPoolSize    = 100
)

// Connect establishes a MongoDB connection, verifies it with a ping and
// returns a handle to the named database plus a disconnect func.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, func(context.Context) error, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(maxPoolSize).
		SetConnectTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client.Database(database), client.Disconnect, nil
}
