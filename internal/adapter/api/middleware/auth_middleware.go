package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cidadealerta/internal/infrastructure/firebase"
)

// TokenVerifier is the slice of the auth client the middleware needs.
// Satisfied by infrastructure/firebase.AuthClient.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (*firebase.Identity, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// Authenticate verifies the bearer ID token and stores the uid and the
// claim-derived admin flag on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		identity, err := m.verifier.VerifyToken(c.Request().Context(), parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", identity.UID)
		c.Set("isAdmin", identity.Admin)

		return next(c)
	}
}

// OptionalAuthenticate sets the uid and admin flag when a valid bearer token
// is present and lets the request through anonymously otherwise. Used on
// public routes whose behavior narrows for signed-in callers, like the
// "mine" issue filter.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if identity, err := m.verifier.VerifyToken(c.Request().Context(), parts[1]); err == nil {
				c.Set("uid", identity.UID)
				c.Set("isAdmin", identity.Admin)
			}
		}

		return next(c)
	}
}
