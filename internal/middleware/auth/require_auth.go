package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_board/internal/tokens"
)

type Middleware struct {
	JWTSecret []byte
}

func New(jwtSecret []byte) *Middleware {
	return &Middleware{JWTSecret: jwtSecret}
}

// RequireAuth is a pure gate: no header means 401, a token that fails
// verification means 403. On success the caller identity lands on the
// echo context and never needs re-parsing downstream.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")
		if rawToken == header || rawToken == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(rawToken, m.JWTSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return echo.NewHTTPError(http.StatusForbidden, "access token expired")
			}
			return echo.NewHTTPError(http.StatusForbidden, "invalid access token")
		}

		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "invalid access token")
		}

		setUserContext(c, userID, claims.Role)
		return next(c)
	}
}
