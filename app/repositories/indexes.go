package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. Mongo treats
// an identical existing index as a no-op, so this is safe to run on every
// startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		"admins": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"products": {
			{Keys: bson.D{{Key: "productCode", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		"orders": {
			{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
	}

	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", col, err)
		}
	}
	return nil
}
