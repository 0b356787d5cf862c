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

// UserHandler handles profile HTTP requests
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
	}
}

// RegisterProfileRoutes registers the authenticated profile route
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMe)
}

// GetMe returns the authenticated user's own profile
func (h *UserHandler) GetMe(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return apperr.Auth("User not authenticated")
	}
	return h.respondProfile(c, user)
}

// GetUser returns a user profile by id. Public: no auth required.
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperr.Validation("Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}
	return h.respondProfile(c, user)
}

func (h *UserHandler) respondProfile(c echo.Context, user *models.User) error {
	followers, err := h.followRepository.GetFollowers(user.ID)
	if err != nil {
		return err
	}
	following, err := h.followRepository.GetFollowing(user.ID)
	if err != nil {
		return err
	}

	profile := models.UserProfile{
		ID:        user.ID,
		Name:      user.Name,
		Followers: compactUsers(followers),
		Following: compactUsers(following),
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true, "user": profile})
}

func compactUsers(users []models.User) []models.UserCompact {
	compact := make([]models.UserCompact, 0, len(users))
	for i := range users {
		compact = append(compact, users[i].ToCompact())
	}
	return compact
}
