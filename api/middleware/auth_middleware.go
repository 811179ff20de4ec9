package middleware

import (
	"net/http"
	"strings"

	"memberbase/internal/repository"
	"memberbase/internal/utils"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware gates protected routes behind a valid bearer token. The user
// is re-read from the store on every request, so the isStaff flag attached to
// the context is always current and deleted or deactivated accounts are shut
// out immediately, regardless of what the token was issued with.
type AuthMiddleware struct {
	JWT   *utils.JWTManager
	Users repository.UserRepository
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.JWT == nil || m.Users == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "access denied")
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}
		claims, err := m.JWT.Parse(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		user, err := m.Users.FindActiveByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "access denied")
		}
		SetAuthContext(c, user.ID, user.IsStaff)
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
