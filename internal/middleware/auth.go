package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clientdesk/portal/internal/response"
	"github.com/clientdesk/portal/internal/session"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// identityKey is the context key for the authenticated caller identity.
const identityKey contextKey = "identity"

// IdentityFrom extracts the authenticated caller from the request context.
// The second return value is false when the request never passed RequireAuth.
func IdentityFrom(ctx context.Context) (session.Identity, bool) {
	id, ok := ctx.Value(identityKey).(session.Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given caller identity.
// Exported for handler tests.
func WithIdentity(ctx context.Context, id session.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// RequireAuth returns middleware that validates a Bearer JWT and injects
// the caller identity into the request context.
func RequireAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "invalid authorization header format")
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				response.Unauthorized(w, "invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				response.Unauthorized(w, "invalid token claims")
				return
			}

			id := session.Identity{}
			id.UserID, _ = claims["sub"].(string)
			id.Role, _ = claims["role"].(string)
			id.AccountType, _ = claims["accountType"].(string)
			if orgID, ok := claims["orgId"].(string); ok && orgID != "" {
				id.OrgID = &orgID
			}

			if id.UserID == "" {
				response.Unauthorized(w, "invalid token claims")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
