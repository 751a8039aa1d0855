// Package database owns the MongoDB connection. The server connects once at
// startup and hands the *mongo.Database to the repositories; nothing else in
// the application reaches for a global handle.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/config"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/logger"
)

// Connect dials MongoDB using the configured URI and verifies the connection
// with a ping. The caller owns the returned client and must Disconnect it.
func Connect(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	uri := config.MongoURI()

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(config.MongoDB())
	logger.Info("mongo connected", "database", db.Name())
	return client, db, nil
}
