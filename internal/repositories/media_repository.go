package repositories

import (
	"github.com/okzdev/microblog/backend/internal/models"
	"gorm.io/gorm"
)

// MediaRepository defines the interface for media data operations
type MediaRepository interface {
	CreateMedia(media *models.Media) error
	GetMediaByID(id uint) (*models.Media, error)
}

// PostgresMediaRepository implements MediaRepository for PostgreSQL
type PostgresMediaRepository struct {
	db *gorm.DB
}

// NewPostgresMediaRepository creates a new PostgresMediaRepository
func NewPostgresMediaRepository(db *gorm.DB) *PostgresMediaRepository {
	return &PostgresMediaRepository{db: db}
}

// CreateMedia creates an unattached media row (tweet_id stays NULL until a
// tweet claims it)
func (r *PostgresMediaRepository) CreateMedia(media *models.Media) error {
	return r.db.Create(media).Error
}

// GetMediaByID retrieves a media row by ID
func (r *PostgresMediaRepository) GetMediaByID(id uint) (*models.Media, error) {
	var media models.Media
	if err := r.db.First(&media, id).Error; err != nil {
		return nil, err
	}
	return &media, nil
}
