package repositories

import (
	"github.com/okzdev/microblog/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(userID, tweetID uint) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like. A duplicate (user_id, tweet_id) pair hits the
// unique index and is dropped, so liking twice leaves exactly one row.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "tweet_id"}},
		DoNothing: true,
	}).Create(like).Error
}

// DeleteLike removes the like if present. Unliking a never-liked tweet is a
// no-op, not an error.
func (r *PostgresLikeRepository) DeleteLike(userID, tweetID uint) error {
	return r.db.Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Like{}).Error
}
