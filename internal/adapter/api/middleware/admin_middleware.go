package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type AdminMiddleware struct{}

func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

// AdminOnly gates a route on the admin custom claim extracted by
// Authenticate. The claim is the single authorization signal; the profile
// role field is only a display mirror.
func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get("uid").(string); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		isAdmin, ok := c.Get("isAdmin").(bool)
		if !ok || !isAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Admin privileges required")
		}

		return next(c)
	}
}
