package repositories

import (
	"github.com/okzdev/microblog/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followedID uint) error
	GetFollowers(userID uint) ([]models.User, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetFollowingIDs(userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts a follow edge. A duplicate pair hits the unique index
// and is dropped, so concurrent identical follows both succeed with one row.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followed_id"}},
		DoNothing: true,
	}).Create(follow).Error
}

// DeleteFollow removes the follow edge if present. Removing an absent edge is
// a no-op, not an error.
func (r *PostgresFollowRepository) DeleteFollow(followerID, followedID uint) error {
	return r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

// GetFollowers returns the users following userID
func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("followed_id = ?", userID),
	).Find(&users).Error
	return users, err
}

// GetFollowing returns the users userID follows
func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("followed_id").Where("follower_id = ?", userID),
	).Find(&users).Error
	return users, err
}

// GetFollowingIDs returns the ids of the users userID follows
func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("followed_id", &ids).Error
	return ids, err
}
