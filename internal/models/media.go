package models

// Media is an uploaded file record. TweetID stays NULL until the media is
// claimed by a tweet at creation time, and transitions at most once.
type Media struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Filename string `json:"filename" gorm:"size:256;not null"`
	TweetID  *uint  `json:"tweet_id,omitempty" gorm:"index"`
}
