package controllers

import (
	"errors"
	"net/http"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/services"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/config"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/auth"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/bind"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/middleware"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/response"
)

// AuthController signs admins in and out.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(authSvc *services.AuthService) *AuthController {
	return &AuthController{auth: authSvc}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Login verifies credentials and sets the session cookie.
// POST /api/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	admin, token, err := c.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, services.ErrInvalidCredential):
			response.Unauthorized(w, "Invalid email or password")
		default:
			response.Internal(w, "Login failed", err)
		}
		return
	}

	http.SetCookie(w, sessionCookie(token, int(auth.TokenTTL.Seconds())))
	response.Success(w, admin)
}

// Logout clears the session cookie.
// POST /api/auth/logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, sessionCookie("", -1))
	response.Message(w, "Logged out")
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Domain:   config.CookieDomain(),
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   config.AppEnv() == "production",
		SameSite: http.SameSiteLaxMode,
	}
}
