package models

// Like marks a user's endorsement of a tweet. The (user_id, tweet_id) pair
// is unique so a user can like a given tweet at most once.
type Like struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	UserID  uint `json:"user_id" gorm:"index;uniqueIndex:idx_user_tweet_like"`
	TweetID uint `json:"tweet_id" gorm:"index;uniqueIndex:idx_user_tweet_like"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
