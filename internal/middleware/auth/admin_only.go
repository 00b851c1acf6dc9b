package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin must run after RequireAuth.
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if Role(c) != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "access denied")
		}
		return next(c)
	}
}
