package http

import (
	"igia-backend/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
)

// actorID is the public id of the authenticated caller, "" on public routes.
func actorID(c echo.Context) string {
	p, _ := middleware.PrincipalFrom(c)
	return p.UserID
}
