package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireStaff gates staff-only routes. It must run after RequireAuth.
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		isStaff, ok := IsStaffFromContext(c)
		if !ok || !isStaff {
			return echo.NewHTTPError(http.StatusForbidden, "access denied")
		}
		return next(c)
	}
}
