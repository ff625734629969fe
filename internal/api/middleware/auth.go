package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/ads-api/internal/api/shared"
	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/service"
	"github.com/phrazzld/ads-api/internal/service/auth"
)

// AuthMiddleware provides bearer-token authentication for routes.
type AuthMiddleware struct {
	authService service.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Authenticate validates the bearer token from the Authorization header,
// resolves it to a user and stores that user in the request context.
// Any failure ends the request with 401 before next runs.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, r, "Authorization header required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			unauthorized(w, r, "Invalid authorization format")
			return
		}

		user, err := m.authService.Authenticate(r.Context(), strings.TrimSpace(token))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				unauthorized(w, r, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, domain.ErrUnauthenticated):
				unauthorized(w, r, "Invalid token")
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"Internal server error", err)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user)))
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	shared.RespondWithError(w, r, http.StatusUnauthorized, message)
}

// GetUser extracts the authenticated user from the request context.
func GetUser(r *http.Request) (*domain.User, bool) {
	return shared.UserFromContext(r.Context())
}
