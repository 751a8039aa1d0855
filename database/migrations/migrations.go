// Package migrations applies one-off schema changes to MongoDB. Applied
// migration names are tracked in the "migrations" collection so each runs
// exactly once.
package migrations

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/logger"
)

// Migration is one named, idempotent schema change.
type Migration struct {
	Name string
	Run  func(ctx context.Context, db *mongo.Database) error
}

// All lists every migration in application order. Append only; never reorder
// or rename entries that have shipped.
var All = []Migration{
	{Name: "2025_07_01_create_indexes", Run: createIndexes},
	{Name: "2025_07_15_backfill_in_stock", Run: backfillInStock},
	{Name: "2025_08_02_default_order_status", Run: defaultOrderStatus},
}

// Apply runs every migration that has not been applied yet.
func Apply(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("migrations")

	for _, m := range All {
		n, err := col.CountDocuments(ctx, bson.M{"name": m.Name})
		if err != nil {
			return fmt.Errorf("check migration %s: %w", m.Name, err)
		}
		if n > 0 {
			continue
		}

		logger.Info("applying migration", "name", m.Name)
		if err := m.Run(ctx, db); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}

		_, err = col.InsertOne(ctx, bson.M{
			"name":      m.Name,
			"appliedAt": time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("record migration %s: %w", m.Name, err)
		}
	}
	return nil
}

func createIndexes(ctx context.Context, db *mongo.Database) error {
	return repositories.EnsureIndexes(ctx, db)
}

// backfillInStock derives the availability flag for products written before
// the flag existed.
func backfillInStock(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("products")

	if _, err := col.UpdateMany(ctx,
		bson.M{"inStock": bson.M{"$exists": false}, "stock": bson.M{"$gt": 0}},
		bson.M{"$set": bson.M{"inStock": true}},
	); err != nil {
		return err
	}
	_, err := col.UpdateMany(ctx,
		bson.M{"inStock": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"inStock": false}},
	)
	return err
}

// defaultOrderStatus marks orders that predate the status lifecycle as
// pending.
func defaultOrderStatus(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("orders").UpdateMany(ctx,
		bson.M{"status": bson.M{"$in": bson.A{nil, ""}}},
		bson.M{"$set": bson.M{"status": "pending"}},
	)
	return err
}
