package models

import "time"

// Follow is a directed follower -> followed relationship. The pair is unique;
// self-follows are rejected at the handler layer, not by a storage constraint.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	FollowedID uint      `json:"followed_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	CreatedAt  time.Time `json:"created_at"`
}
