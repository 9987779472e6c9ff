package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const HeaderAPIKey = "X-Api-Key"

// APIKey guards a group with a shared token. An empty token disables the check, which is
// the default for local use.
func APIKey(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return next(c)
			}
			got := c.Request().Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or invalid api key"})
			}
			return next(c)
		}
	}
}
