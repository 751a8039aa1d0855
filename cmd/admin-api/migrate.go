package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/config"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/database/migrations"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/database/seeders"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/database"
)

// withDatabase loads config, connects, runs fn, and disconnects.
func withDatabase(fn func(ctx context.Context, db *mongo.Database) error) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	client, db, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background()) //nolint:errcheck

	return fn(ctx, db)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(migrations.Apply)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database (bootstrap admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(seeders.Apply)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
