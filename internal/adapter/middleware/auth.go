package middleware

import (
	"net/http"
	"strings"

	"igia-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

const principalKey = "auth.principal"

// TokenParser verifies a bearer token; auth.Tokens is the production implementation.
type TokenParser interface {
	Parse(token string) (user.Principal, error)
}

// Auth requires "Authorization: Bearer <jwt>" and stores the caller in the context.
func Auth(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(strings.TrimSpace(raw), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			p, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			SetPrincipal(c, p)
			return next(c)
		}
	}
}

func SetPrincipal(c echo.Context, p user.Principal) { c.Set(principalKey, p) }

func PrincipalFrom(c echo.Context) (user.Principal, bool) {
	p, ok := c.Get(principalKey).(user.Principal)
	return p, ok
}
