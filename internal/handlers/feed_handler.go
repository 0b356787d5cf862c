package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okzdev/microblog/backend/internal/apperr"
	"github.com/okzdev/microblog/backend/internal/models"
	"github.com/okzdev/microblog/backend/internal/repositories"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	tweetRepository  repositories.TweetRepository
	followRepository repositories.FollowRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(tweetRepo repositories.TweetRepository, followRepo repositories.FollowRepository) *FeedHandler {
	return &FeedHandler{
		tweetRepository:  tweetRepo,
		followRepository: followRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/tweets", h.GetFeed)
}

// FeedTweet is a tweet enriched with its attachments, author and likes.
type FeedTweet struct {
	ID          uint               `json:"id"`
	Content     string             `json:"content"`
	Attachments []string           `json:"attachments"`
	Author      models.UserCompact `json:"author"`
	Likes       []LikeEntry        `json:"likes"`
}

// LikeEntry identifies a user who liked a tweet.
type LikeEntry struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
}

// GetFeed returns the tweets of the accounts the requester follows, most
// liked first, newest first among equals. An empty follow set yields an
// empty feed.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return apperr.Auth("User not authenticated")
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(user.ID)
	if err != nil {
		return err
	}

	feed := make([]FeedTweet, 0)
	if len(followingIDs) > 0 {
		tweets, err := h.tweetRepository.GetFeedForAuthors(followingIDs)
		if err != nil {
			return err
		}
		for _, t := range tweets {
			feed = append(feed, serializeFeedTweet(t))
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"result": true, "tweets": feed})
}

func serializeFeedTweet(t models.Tweet) FeedTweet {
	attachments := make([]string, 0, len(t.Media))
	for _, m := range t.Media {
		attachments = append(attachments, "/media/"+m.Filename)
	}
	likes := make([]LikeEntry, 0, len(t.Likes))
	for _, l := range t.Likes {
		likes = append(likes, LikeEntry{UserID: l.UserID, Name: l.User.Name})
	}
	return FeedTweet{
		ID:          t.ID,
		Content:     t.Content,
		Attachments: attachments,
		Author:      t.Author.ToCompact(),
		Likes:       likes,
	}
}
