// Package controllers holds the HTTP handlers. Each controller binds and
// validates the request, calls its service, and maps service errors onto
// the API's status codes.
package controllers

import (
	"errors"
	"net/http"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/services"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/response"
)

// writeServiceError maps the shared service error set onto HTTP responses.
// notFoundMsg names the missing resource; internalMsg labels everything
// unexpected.
func writeServiceError(w http.ResponseWriter, err error, notFoundMsg, internalMsg string) {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		response.BadRequest(w, "Invalid id")
	case errors.Is(err, services.ErrNoFields):
		response.BadRequest(w, "Nothing to update")
	case errors.Is(err, repositories.ErrNotFound):
		response.NotFound(w, notFoundMsg)
	default:
		response.Internal(w, internalMsg, err)
	}
}
