package services

import (
	"context"
	"fmt"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/auth"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/logger"
)

// AuthService signs admins in and out of the dashboard.
type AuthService struct {
	admins AdminStore
}

func NewAuthService(admins AdminStore) *AuthService {
	return &AuthService{admins: admins}
}

// Login verifies the credentials and returns the admin together with a
// signed session token. An unknown email surfaces as ErrNotFound so the
// handler can distinguish it from a bad password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Admin, string, error) {
	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if !auth.CheckPassword(admin.Password, password) {
		return nil, "", ErrInvalidCredential
	}

	token, err := auth.GenerateToken(admin.ID.Hex(), admin.Email, admin.Name, models.RoleAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	logger.WithCtx(ctx).Info("admin logged in", "admin_id", admin.ID.Hex(), "email", admin.Email)
	return admin, token, nil
}
