package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/roster-api/internal/api/shared"
	"github.com/phrazzld/roster-api/internal/failure"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/redact"
	"github.com/phrazzld/roster-api/internal/service/auth"
)

// AuthMiddleware guards routes with bearer tokens.
type AuthMiddleware struct {
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(jwtService auth.JWTService, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger.With("component", "auth_middleware"),
	}
}

// RequireScope validates the bearer token, requires it to grant scope and
// stores the claims in the request context.
func (m *AuthMiddleware) RequireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContextOrDefault(r.Context(), m.logger)

			token, ok := bearerToken(r)
			if !ok {
				shared.RespondWithError(w, r, failure.Unauthorized{}, "Bearer token required")
				return
			}

			claims, err := m.jwtService.ValidateToken(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, failure.Unauthorized{}, "Token expired")
				return
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, failure.Unauthorized{}, "Invalid token")
				return
			default:
				log.Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithFailure(w, r, failure.Internal(err))
				return
			}

			if !claims.HasScope(scope) {
				log.Warn("token lacks required scope", "subject", claims.Subject, "scope", scope)
				shared.RespondWithError(w, r, failure.Forbidden{}, "Token lacks scope "+scope)
				return
			}

			next.ServeHTTP(w, r.WithContext(shared.WithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
