package models

import "time"

// Tweet is a short text post. Content and author are immutable once created.
type Tweet struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`

	Author User    `json:"-" gorm:"foreignKey:AuthorID"`
	Media  []Media `json:"-" gorm:"foreignKey:TweetID"`
	Likes  []Like  `json:"-" gorm:"foreignKey:TweetID"`
}

// CreateTweetRequest defines the request body for posting a tweet.
type CreateTweetRequest struct {
	Content  string `json:"tweet_data" validate:"required"`
	MediaIDs []uint `json:"tweet_media_ids"`
}
