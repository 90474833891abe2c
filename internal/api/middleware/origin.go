package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stylematch/waitlist/internal/core/domain"
)

// Origin rejects cross-origin requests whose Origin header is not in allowed.
// Requests without an Origin header (curl, server to server) pass through.
func Origin(allowed []string) echo.MiddlewareFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[normalizeOrigin(o)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			if origin == "" {
				return next(c)
			}
			if _, ok := set[normalizeOrigin(origin)]; !ok {
				return domain.ErrOriginNotAllowed
			}
			return next(c)
		}
	}
}

func normalizeOrigin(o string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))
}
