// Package seeders populates a fresh database with the records the dashboard
// needs to be usable, most importantly the bootstrap admin.
package seeders

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/config"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/auth"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/logger"
)

// Seeder is one named seed step. Steps are idempotent: running the seeder
// twice must not duplicate data.
type Seeder struct {
	Name string
	Run  func(ctx context.Context, db *mongo.Database) error
}

var All = []Seeder{
	{Name: "bootstrap_admin", Run: bootstrapAdmin},
}

// Apply runs every seeder.
func Apply(ctx context.Context, db *mongo.Database) error {
	for _, s := range All {
		logger.Info("running seeder", "name", s.Name)
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seeder %s: %w", s.Name, err)
		}
	}
	return nil
}

// bootstrapAdmin creates the first operator account from SEED_ADMIN_* so a
// fresh install has someone who can log in. Refuses to run without an
// explicit password and skips silently when the account already exists.
func bootstrapAdmin(ctx context.Context, db *mongo.Database) error {
	password := config.SeedAdminPassword()
	if password == "" {
		return errors.New("SEED_ADMIN_PASSWORD is not set")
	}

	repo := repositories.NewAdminRepository(db)
	email := config.SeedAdminEmail()

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		logger.Info("bootstrap admin already exists", "email", email)
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := &models.Admin{
		Name:     config.SeedAdminName(),
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := repo.Insert(ctx, admin); err != nil {
		return err
	}

	logger.Info("bootstrap admin created", "email", email)
	return nil
}
