package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/auth"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/logger"
)

// AdminService manages dashboard operator accounts.
type AdminService struct {
	admins AdminStore
}

func NewAdminService(admins AdminStore) *AdminService {
	return &AdminService{admins: admins}
}

func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	return s.admins.List(ctx)
}

func (s *AdminService) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.admins.FindByID(ctx, oid)
}

// Create registers a new admin. Duplicate emails surface as
// repositories.ErrDuplicateKey.
func (s *AdminService) Create(ctx context.Context, name, email, password string) (*models.Admin, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &models.Admin{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := s.admins.Insert(ctx, admin); err != nil {
		return nil, err
	}

	logger.WithCtx(ctx).Info("admin created", "admin_id", admin.ID.Hex(), "email", admin.Email)
	return admin, nil
}

// Delete removes an admin account. An admin cannot delete themselves.
func (s *AdminService) Delete(ctx context.Context, requesterID, id string) error {
	if requesterID == id {
		return ErrSelfDelete
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.admins.Delete(ctx, oid); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("admin deleted", "admin_id", id, "by", requesterID)
	return nil
}

// AdminSettingsInput carries the optional profile fields an admin can change
// on their own account. Nil means leave the field as is.
type AdminSettingsInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UpdateSettings applies the given profile changes and returns the updated
// account.
func (s *AdminService) UpdateSettings(ctx context.Context, id string, in AdminSettingsInput) (*models.Admin, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Email != nil {
		set["email"] = *in.Email
	}
	if in.Password != nil {
		hashed, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		set["password"] = hashed
	}
	if len(set) == 0 {
		return nil, ErrNoFields
	}

	return s.admins.Update(ctx, oid, set)
}

// parseID converts a hex path parameter into an ObjectID.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
