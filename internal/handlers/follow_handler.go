package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/okzdev/microblog/backend/internal/apperr"
	"github.com/okzdev/microblog/backend/internal/models"
	"github.com/okzdev/microblog/backend/internal/repositories"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// FollowUser follows a user. Following an already-followed user is a no-op
// success; following yourself is rejected.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return apperr.Auth("User not authenticated")
	}

	target, err := h.resolveTarget(c, user, true)
	if err != nil {
		return err
	}

	follow := &models.Follow{FollowerID: user.ID, FollowedID: target.ID}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"result": true})
}

// UnfollowUser removes the follow edge if present; a no-op success otherwise.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return apperr.Auth("User not authenticated")
	}

	target, err := h.resolveTarget(c, user, false)
	if err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(user.ID, target.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"result": true})
}

func (h *FollowHandler) resolveTarget(c echo.Context, user *models.User, rejectSelf bool) (*models.User, error) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, apperr.Validation("Invalid user ID")
	}
	if rejectSelf && uint(targetID) == user.ID {
		return nil, apperr.Validation("Cannot follow yourself")
	}
	target, err := h.userRepository.GetUserByID(uint(targetID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return target, nil
}
