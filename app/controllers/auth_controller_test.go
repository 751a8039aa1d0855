package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/services"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/auth"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/middleware"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/router"
)

func newAuthRouter(t *testing.T, store *fakeAdminStore) http.Handler {
	t.Helper()
	ctrl := NewAuthController(services.NewAuthService(store))

	r := router.New()
	r.Post("/api/auth/login", "auth.login", ctrl.Login)
	r.Post("/api/auth/logout", "auth.logout", ctrl.Logout)
	return r.Handler()
}

func hashedAdmin(t *testing.T, email, password string) *models.Admin {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.Admin{ID: primitive.NewObjectID(), Name: "Root", Email: email, Password: hashed}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	admin := hashedAdmin(t, "root@example.com", "secret123")
	h := newAuthRouter(t, newFakeAdminStore(admin))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"root@example.com","password":"secret123"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "session cookie must be set")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.NotEmpty(t, cookie.Value)

	claims, err := auth.ValidateToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.Hex(), claims.ID)

	// The password hash never appears in the response body.
	assert.NotContains(t, rec.Body.String(), admin.Password)
}

func TestLoginUnknownEmailIs404(t *testing.T) {
	h := newAuthRouter(t, newFakeAdminStore())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ghost@example.com","password":"secret123"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "User not found", body["message"])
}

func TestLoginWrongPasswordIs401(t *testing.T) {
	admin := hashedAdmin(t, "root@example.com", "secret123")
	h := newAuthRouter(t, newFakeAdminStore(admin))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"root@example.com","password":"nope-nope"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginValidation(t *testing.T) {
	h := newAuthRouter(t, newFakeAdminStore())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"not-an-email","password":"x"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "email")
	assert.Contains(t, body.Errors, "password")
}

func TestLogoutExpiresCookie(t *testing.T) {
	h := newAuthRouter(t, newFakeAdminStore())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
