package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/okzdev/microblog/backend/internal/models"
)

// currentUser returns the authenticated user placed in the context by the
// api-key middleware, or nil on unauthenticated routes.
func currentUser(c echo.Context) *models.User {
	if user, ok := c.Get("currentUser").(*models.User); ok {
		return user
	}
	return nil
}
