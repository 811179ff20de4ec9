package middleware

import "github.com/labstack/echo/v4"

const (
	contextUserIDKey  = "auth_user_id"
	contextIsStaffKey = "auth_is_staff"
)

func SetAuthContext(c echo.Context, userID uint, isStaff bool) {
	c.Set(contextUserIDKey, userID)
	c.Set(contextIsStaffKey, isStaff)
}

func UserIDFromContext(c echo.Context) (uint, bool) {
	userID, ok := c.Get(contextUserIDKey).(uint)
	return userID, ok
}

func IsStaffFromContext(c echo.Context) (bool, bool) {
	isStaff, ok := c.Get(contextIsStaffKey).(bool)
	return isStaff, ok
}
