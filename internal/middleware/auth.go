package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/toolkeep/toolkeep/internal/auth"
	"github.com/toolkeep/toolkeep/internal/cache"
	"github.com/toolkeep/toolkeep/internal/repository"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger     *slog.Logger
	Issuer     *auth.TokenIssuer
	Repository *repository.Repository
	Cache      *cache.Cache
}

// Auth returns a middleware that authenticates API requests.
// It extracts the bearer token from the Authorization header, verifies it,
// resolves the caller's account, and injects the identity into the request
// context. Resolved identities are cached briefly so a burst of requests
// with the same token costs one database lookup.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				logAuthFailure(cfg.Logger, r, "missing_token")
				writeAuthError(w)
				return
			}

			claims, err := cfg.Issuer.Verify(token)
			if err != nil {
				logAuthFailure(cfg.Logger, r, "invalid_token")
				writeAuthError(w)
				return
			}

			// Check cache first
			cacheKey := auth.QuickHash(token)
			identity, _ := cfg.Cache.GetIdentity(r.Context(), cacheKey)

			if identity == nil {
				// Cache miss - load the account
				user, err := cfg.Repository.GetUserByID(r.Context(), claims.UserID)
				if err != nil {
					if errors.Is(err, repository.ErrUserNotFound) {
						logAuthFailure(cfg.Logger, r, "unknown_user")
					} else {
						cfg.Logger.Error("database error during auth",
							slog.String("error", err.Error()),
							slog.String("request_id", GetRequestID(r.Context())),
						)
					}
					writeAuthError(w)
					return
				}

				if !user.IsActive {
					logAuthFailure(cfg.Logger, r, "inactive_user")
					writeAuthError(w)
					return
				}

				identity = &auth.Identity{UserID: user.ID, Email: user.Email}
				_ = cfg.Cache.SetIdentity(r.Context(), cacheKey, identity)
			}

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the bearer token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}

// writeAuthError writes a 401 response without detail about what failed.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","code":"UNAUTHORIZED"}`))
}
