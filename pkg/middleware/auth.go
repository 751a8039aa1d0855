package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/auth"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/response"
)

// SessionCookie is the cookie name the dashboard stores its session token in.
const SessionCookie = "next-auth.session-token-admin"

type claimsKey struct{}

// ClaimsFromCtx returns the verified token claims stored by RequireAuth.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

// tokenFromRequest extracts the raw session token: the session cookie first,
// then an Authorization: Bearer header for non-browser clients.
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// RequireAuth rejects requests without a valid session token (401) and
// stores the verified claims in the request context.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			response.Unauthorized(w, "Authentication required")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSelf enforces ownership on routes that act on a specific admin's own
// resource: the token subject must match the named path parameter.
// Must be chained after RequireAuth.
func RequireSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			if claims.ID != chi.URLParam(r, param) {
				response.Forbidden(w, "You can only update your own account")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
