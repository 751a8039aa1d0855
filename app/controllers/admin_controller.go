package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/services"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/bind"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/middleware"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/response"
)

// AdminController manages operator accounts.
type AdminController struct {
	admins *services.AdminService
}

func NewAdminController(admins *services.AdminService) *AdminController {
	return &AdminController{admins: admins}
}

// List returns every admin account.
// GET /api/admins
func (c *AdminController) List(w http.ResponseWriter, r *http.Request) {
	admins, err := c.admins.List(r.Context())
	if err != nil {
		response.Internal(w, "Failed to fetch admins", err)
		return
	}
	response.Success(w, admins)
}

type createAdminInput struct {
	Name                 string `json:"name" validate:"required,min=2"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6,confirmed"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Create registers a new admin account.
// POST /api/admins
func (c *AdminController) Create(w http.ResponseWriter, r *http.Request) {
	var in createAdminInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	admin, err := c.admins.Create(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			response.BadRequest(w, "Email already registered")
			return
		}
		response.Internal(w, "Failed to create admin", err)
		return
	}
	response.Created(w, admin)
}

// Delete removes an admin account. Self-deletion is rejected.
// DELETE /api/admins/{adminId}
func (c *AdminController) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	err := c.admins.Delete(r.Context(), claims.ID, chi.URLParam(r, "adminId"))
	if err != nil {
		if errors.Is(err, services.ErrSelfDelete) {
			response.BadRequest(w, "You cannot delete your own account")
			return
		}
		writeServiceError(w, err, "Admin not found", "Failed to delete admin")
		return
	}
	response.Message(w, "Admin deleted")
}

type adminSettingsInput struct {
	Name     *string `json:"name" validate:"min=2"`
	Email    *string `json:"email" validate:"email"`
	Password *string `json:"password" validate:"min=6"`
}

// UpdateSettings lets an admin change their own profile.
// PATCH /api/admins/{adminId}/admin-settings
func (c *AdminController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in adminSettingsInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	admin, err := c.admins.UpdateSettings(r.Context(), chi.URLParam(r, "adminId"), services.AdminSettingsInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			response.BadRequest(w, "Email already registered")
			return
		}
		writeServiceError(w, err, "Admin not found", "Failed to update settings")
		return
	}
	response.Success(w, admin)
}
