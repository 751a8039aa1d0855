package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/services"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/response"
)

// UserController exposes the read-only customer directory.
type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// List returns every customer with their order history populated.
// GET /api/users
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.List(r.Context())
	if err != nil {
		response.Internal(w, "Failed to fetch users", err)
		return
	}
	response.Success(w, users)
}

// Get returns one customer with their order history populated.
// GET /api/users/{userId}
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	user, err := c.users.GetByID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, err, "User not found", "Failed to fetch user")
		return
	}
	response.Success(w, user)
}
