package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/okzdev/microblog/backend/internal/apperr"
	"github.com/okzdev/microblog/backend/internal/repositories"
)

// HeaderAPIKey is the request header carrying the caller's pre-issued key.
const HeaderAPIKey = "api-key"

// APIKeyAuth resolves the api-key header to a User and stores it in the
// context for the lifetime of the request. No session state outlives the
// request.
func APIKeyAuth(users repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(HeaderAPIKey)
			if apiKey == "" {
				return apperr.Auth("Missing api-key header")
			}

			user, err := users.GetUserByAPIKey(apiKey)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.Auth("User not found for given api-key")
				}
				return err
			}

			c.Set("currentUser", user)
			return next(c)
		}
	}
}
