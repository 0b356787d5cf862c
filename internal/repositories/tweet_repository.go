package repositories

import (
	"github.com/okzdev/microblog/backend/internal/models"
	"gorm.io/gorm"
)

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	CreateTweetWithMedia(tweet *models.Tweet, mediaIDs []uint) error
	GetTweetByID(id uint) (*models.Tweet, error)
	DeleteTweetCascade(tweetID uint) ([]string, error)
	GetFeedForAuthors(authorIDs []uint) ([]models.Tweet, error)
}

// PostgresTweetRepository implements TweetRepository for PostgreSQL
type PostgresTweetRepository struct {
	db *gorm.DB
}

// NewPostgresTweetRepository creates a new PostgresTweetRepository
func NewPostgresTweetRepository(db *gorm.DB) *PostgresTweetRepository {
	return &PostgresTweetRepository{db: db}
}

// CreateTweetWithMedia creates the tweet and claims the listed media rows in
// one transaction. Only rows whose tweet_id is still NULL are claimed; ids
// that do not resolve (or are already attached) are silently skipped.
func (r *PostgresTweetRepository) CreateTweetWithMedia(tweet *models.Tweet, mediaIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tweet).Error; err != nil {
			return err
		}
		if len(mediaIDs) == 0 {
			return nil
		}
		return tx.Model(&models.Media{}).
			Where("id IN ? AND tweet_id IS NULL", mediaIDs).
			Update("tweet_id", tweet.ID).Error
	})
}

// GetTweetByID retrieves a tweet by ID
func (r *PostgresTweetRepository) GetTweetByID(id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.First(&tweet, id).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// DeleteTweetCascade deletes the tweet together with its likes and media rows
// in one transaction, and returns the filenames of the removed media so the
// caller can drop the stored blobs.
func (r *PostgresTweetRepository) DeleteTweetCascade(tweetID uint) ([]string, error) {
	var filenames []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Media{}).Where("tweet_id = ?", tweetID).
			Pluck("filename", &filenames).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", tweetID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", tweetID).Delete(&models.Media{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tweet{}, tweetID).Error
	})
	if err != nil {
		return nil, err
	}
	return filenames, nil
}

// GetFeedForAuthors returns the tweets authored by the given users, most
// liked first, newest first among equals, with author, media and liking
// users loaded.
func (r *PostgresTweetRepository) GetFeedForAuthors(authorIDs []uint) ([]models.Tweet, error) {
	var tweets []models.Tweet
	err := r.db.Model(&models.Tweet{}).
		Select("tweets.*").
		Joins("LEFT JOIN likes ON likes.tweet_id = tweets.id").
		Where("tweets.author_id IN ?", authorIDs).
		Group("tweets.id").
		Order("COUNT(likes.id) DESC, tweets.created_at DESC").
		Preload("Author").
		Preload("Media").
		Preload("Likes.User").
		Find(&tweets).Error
	return tweets, err
}
