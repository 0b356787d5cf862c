package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/okzdev/microblog/backend/internal/apperr"
	"github.com/okzdev/microblog/backend/internal/models"
	"github.com/okzdev/microblog/backend/internal/repositories"
	"github.com/okzdev/microblog/backend/internal/storage"
)

// TweetHandler handles HTTP requests related to tweets
type TweetHandler struct {
	tweetRepository repositories.TweetRepository
	blobStorage     storage.BlobStorage
}

// NewTweetHandler creates a new TweetHandler
func NewTweetHandler(tweetRepo repositories.TweetRepository, blobStorage storage.BlobStorage) *TweetHandler {
	return &TweetHandler{
		tweetRepository: tweetRepo,
		blobStorage:     blobStorage,
	}
}

// RegisterTweetRoutes registers tweet-related routes
func (h *TweetHandler) RegisterTweetRoutes(g *echo.Group) {
	g.POST("/tweets", h.CreateTweet)
	g.DELETE("/tweets/:id", h.DeleteTweet)
}

// CreateTweet creates a tweet, claiming any listed unattached media rows in
// the same transaction. Media ids that do not resolve are ignored.
func (h *TweetHandler) CreateTweet(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return apperr.Auth("User not authenticated")
	}

	var req models.CreateTweetRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation("tweet_data is required")
	}

	tweet := &models.Tweet{
		Content:  req.Content,
		AuthorID: user.ID,
	}
	if err := h.tweetRepository.CreateTweetWithMedia(tweet, req.MediaIDs); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"result": true, "tweet_id": tweet.ID})
}

// DeleteTweet deletes the requester's own tweet together with its likes and
// media. Stored blobs are removed best-effort after the rows are gone.
func (h *TweetHandler) DeleteTweet(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return apperr.Auth("User not authenticated")
	}

	tweetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperr.Validation("Invalid tweet ID")
	}

	tweet, err := h.tweetRepository.GetTweetByID(uint(tweetID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Tweet not found")
		}
		return err
	}
	if tweet.AuthorID != user.ID {
		return apperr.Permission("Cannot delete another user's tweet")
	}

	filenames, err := h.tweetRepository.DeleteTweetCascade(tweet.ID)
	if err != nil {
		return err
	}
	for _, filename := range filenames {
		if err := h.blobStorage.Remove(context.Background(), filename); err != nil {
			log.Printf("Failed to remove media blob %s: %v", filename, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"result": true})
}
