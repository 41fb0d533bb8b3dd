package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/profile"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/user"
)

type contextKey string

const profileContextKey contextKey = "currentProfile"

// ProfileFromContext returns the authenticated caller's profile, or
// nil when the request did not pass through the auth middleware.
func ProfileFromContext(ctx context.Context) *profile.Profile {
	p, _ := ctx.Value(profileContextKey).(*profile.Profile)
	return p
}

// WithProfile returns a context carrying the caller's profile, the way
// Authenticate leaves it after a successful login check.
func WithProfile(ctx context.Context, p *profile.Profile) context.Context {
	return context.WithValue(ctx, profileContextKey, p)
}

// Middleware authenticates requests and resolves the caller's profile.
type Middleware struct {
	service     Service
	userRepo    user.Repository
	profileRepo profile.Repository
}

// NewMiddleware creates the auth middleware.
func NewMiddleware(service Service, userRepo user.Repository, profileRepo profile.Repository) *Middleware {
	return &Middleware{service: service, userRepo: userRepo, profileRepo: profileRepo}
}

// Authenticate validates the bearer token and loads the caller's
// profile into the request context. Any failure ends the request with
// 401: a token without a profile row grants nothing. The identity's
// disabled flag is re-read on every request so a disable takes effect
// immediately instead of when the token expires.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, ErrNotAuthenticated.Error(), http.StatusUnauthorized)
			return
		}

		subject, err := m.service.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			http.Error(w, ErrNotAuthenticated.Error(), http.StatusUnauthorized)
			return
		}

		u, err := m.userRepo.GetUserByID(r.Context(), subject)
		if err != nil {
			http.Error(w, ErrNotAuthenticated.Error(), http.StatusUnauthorized)
			return
		}
		if u.Disabled {
			http.Error(w, ErrAccountDisabled.Error(), http.StatusUnauthorized)
			return
		}

		p, err := m.profileRepo.GetByID(r.Context(), subject)
		if err != nil {
			http.Error(w, ErrNotAuthenticated.Error(), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), p)))
	})
}

// RequireRole guards a route group: the caller's role must be one of
// the allowed ones.
func RequireRole(roles ...profile.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := ProfileFromContext(r.Context())
			if p == nil {
				http.Error(w, ErrNotAuthenticated.Error(), http.StatusUnauthorized)
				return
			}
			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, ErrForbidden.Error(), http.StatusForbidden)
		})
	}
}
