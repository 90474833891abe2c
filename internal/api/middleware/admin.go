package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stylematch/waitlist/internal/core/ports"
)

// AdminKey is the context key set once a request carries a valid admin credential.
const AdminKey = "admin"

// Admin requires an "Authorization: Bearer <credential>" header accepted by
// the admin service. Rejected requests never reach the handler.
func Admin(admin ports.AdminService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			if err := admin.Authorize(strings.TrimSpace(parts[1])); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
			}

			c.Set(AdminKey, true)
			return next(c)
		}
	}
}
