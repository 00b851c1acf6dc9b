package auth

import (
	"github.com/labstack/echo/v4"
)

const (
	userIDKey = "userID"
	roleKey   = "role"
)

func setUserContext(c echo.Context, userID uint, role string) {
	c.Set(userIDKey, userID)
	c.Set(roleKey, role)
}

func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(userIDKey).(uint)
	return id, ok
}

func Role(c echo.Context) string {
	role, _ := c.Get(roleKey).(string)
	return role
}
