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

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository  repositories.LikeRepository
	tweetRepository repositories.TweetRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, tweetRepo repositories.TweetRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository:  likeRepo,
		tweetRepository: tweetRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/tweets/:id/likes", h.LikeTweet)
	g.DELETE("/tweets/:id/likes", h.UnlikeTweet)
}

// LikeTweet likes a tweet. Liking an already-liked tweet is a no-op success.
func (h *LikeHandler) LikeTweet(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return apperr.Auth("User not authenticated")
	}

	tweet, err := h.resolveTweet(c)
	if err != nil {
		return err
	}

	like := &models.Like{UserID: user.ID, TweetID: tweet.ID}
	if err := h.likeRepository.CreateLike(like); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"result": true})
}

// UnlikeTweet removes the like if present. Unliking a never-liked tweet is a
// no-op success.
func (h *LikeHandler) UnlikeTweet(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return apperr.Auth("User not authenticated")
	}

	tweet, err := h.resolveTweet(c)
	if err != nil {
		return err
	}

	if err := h.likeRepository.DeleteLike(user.ID, tweet.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"result": true})
}

func (h *LikeHandler) resolveTweet(c echo.Context) (*models.Tweet, error) {
	tweetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, apperr.Validation("Invalid tweet ID")
	}
	tweet, err := h.tweetRepository.GetTweetByID(uint(tweetID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Tweet not found")
		}
		return nil, err
	}
	return tweet, nil
}
