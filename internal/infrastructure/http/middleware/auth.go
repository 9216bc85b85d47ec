package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/freshdeli/console/internal/application/ports"
	"github.com/freshdeli/console/internal/infrastructure/http/response"
	"github.com/freshdeli/console/internal/pkg/logger"
)

type contextKey string

const OperatorContextKey contextKey = "operator"

// NewSessionMiddleware revalidates the admin session token on every request
// and slides its expiry. The login and logout endpoints themselves stay
// outside this middleware.
func NewSessionMiddleware(cache ports.Cache, ttl time.Duration, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				response.WriteError(w, http.StatusUnauthorized, response.StatusUnauthorized, "Missing session token")
				return
			}

			username, err := cache.GetSession(r.Context(), token)
			if err != nil {
				response.WriteDomainError(w, err)
				return
			}

			if err := cache.RefreshSession(r.Context(), token, ttl); err != nil {
				log.Warn("Failed to refresh session", "error", err)
			}

			ctx := context.WithValue(r.Context(), OperatorContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("session_token"); err == nil {
		return cookie.Value
	}
	return ""
}

// OperatorFromContext returns the username the session middleware attached.
func OperatorFromContext(ctx context.Context) string {
	username, _ := ctx.Value(OperatorContextKey).(string)
	return username
}
