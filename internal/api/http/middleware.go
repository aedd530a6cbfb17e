package http

import (
	"context"
	"net/http"
	"strings"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/logger"
	"darna-backend/internal/security"
	"darna-backend/internal/settings"
)

type contextKey struct{ name string }

var claimsKey = contextKey{"claims"}

// claimsFrom returns the authenticated claims, or nil on anonymous requests.
func claimsFrom(ctx context.Context) *security.UserClaims {
	claims, _ := ctx.Value(claimsKey).(*security.UserClaims)
	return claims
}

// Authenticate parses a Bearer token when present and stores the claims in
// the request context. With required set, requests without a valid access
// token are rejected.
func Authenticate(tokens security.TokenManager, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				if required {
					writeError(w, apperr.New(apperr.KindUnauthorized, "authentication required"))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			claims, err := tokens.ValidateToken(token)
			if err != nil || claims.Type != security.TokenTypeAccess {
				writeError(w, apperr.New(apperr.KindUnauthorized, "invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a subtree on the authenticated role.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFrom(r.Context())
			if claims == nil {
				writeError(w, apperr.New(apperr.KindUnauthorized, "authentication required"))
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, apperr.New(apperr.KindForbidden, "insufficient permissions"))
		})
	}
}

// Maintenance blocks non-admin traffic while maintenance mode is on. The
// login route stays reachable so an admin can sign in and turn the flag off
// again. When settings have never loaded the gate fails open: an unreachable
// settings store should degrade the back office, not take the site down.
func Maintenance(store *settings.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap, loaded := store.Snapshot()
			if !loaded {
				next.ServeHTTP(w, r)
				return
			}

			role := domain.Role("")
			if claims := claimsFrom(r.Context()); claims != nil {
				role = claims.Role
			}
			if settings.MaintenanceBlocked(snap.General.MaintenanceMode, role, r.URL.Path) {
				writeError(w, apperr.New(apperr.KindUnavailable, "the platform is under maintenance"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one line per request in the access-log style.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("http request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
