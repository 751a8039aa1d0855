package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/auth"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/middleware"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/router"
)

const adminID = "66c1f0a2b3d4e5f601234567"

func issueToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(adminID, "staff@example.com", "Staff", "admin")
	require.NoError(t, err)
	return token
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequireAuthMissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	middleware.RequireAuth(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "garbage"})

	middleware.RequireAuth(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthCookie(t *testing.T) {
	var gotID string
	inner := func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromCtx(r.Context())
		require.True(t, ok)
		gotID = claims.ID
		w.WriteHeader(http.StatusOK)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: issueToken(t)})

	middleware.RequireAuth(http.HandlerFunc(inner)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, adminID, gotID)
}

func TestRequireAuthBearerFallback(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t))

	middleware.RequireAuth(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSelfOwnershipMismatch(t *testing.T) {
	r := router.New()
	r.Patch("/api/admins/{adminId}/admin-settings", "admins.settings",
		okHandler, middleware.RequireAuth, middleware.RequireSelf("adminId"))

	// Token subject differs from the path parameter.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/admins/000000000000000000000000/admin-settings", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: issueToken(t)})
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Matching subject passes.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/api/admins/"+adminID+"/admin-settings", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: issueToken(t)})
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// No token at all.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/api/admins/"+adminID+"/admin-settings", nil)
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
