package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/Jogoraa/Woliso-Rentals/internal/user"
)

// TokenVerifier validates a bearer credential and yields the subject user id.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserLoader resolves an authenticated user id to its record.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// BearerAuth validates the Authorization header, loads the user and attaches it
// to the request context. Missing or invalid credentials end the request with 401.
func BearerAuth(tokens TokenVerifier, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
				return
			}

			userID, err := tokens.Verify(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
				return
			}

			u, err := users.FindByID(r.Context(), userID)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "user not found")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// OptionalAuth attaches the user when a valid bearer token is present and lets
// the request through anonymously otherwise. For routes whose response varies
// by role but are open to unauthenticated callers.
func OptionalAuth(tokens TokenVerifier, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := tokens.Verify(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			u, err := users.FindByID(r.Context(), userID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RequireRole guards a subtree to callers holding one of the given roles.
// Must run after BearerAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := UserFromContext(r.Context())
			if u == nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
				return
			}
			for _, role := range roles {
				if u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteError(w, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
		})
	}
}
