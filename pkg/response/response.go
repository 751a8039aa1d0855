// Package response writes JSON responses with the API's error contract:
// successful handlers return their payload as-is, failures return
// {"message": ..., "details": ...?}.
package response

import (
	"encoding/json"
	"net/http"
)

// errorBody is the error payload shape shared by every handler.
type errorBody struct {
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// Message sends a 200 with just a message body.
func Message(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, errorBody{Message: message})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Message: message})
}

// ErrorDetails sends a JSON error response carrying the underlying error text.
func ErrorDetails(w http.ResponseWriter, status int, message, details string) {
	JSON(w, status, errorBody{Message: message, Details: details})
}

// ValidationError sends a 400 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusBadRequest, errorBody{Message: "Validation failed", Errors: errs})
}

// BadRequest sends a 400.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Authentication required"
	}
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Not found"
	}
	Error(w, http.StatusNotFound, message)
}

// Internal sends a 500 with message and, when err is non-nil, its text.
func Internal(w http.ResponseWriter, message string, err error) {
	if err != nil {
		ErrorDetails(w, http.StatusInternalServerError, message, err.Error())
		return
	}
	Error(w, http.StatusInternalServerError, message)
}
