package model

import "time"

// Subscription links a reader to an author whose posts they follow.
type Subscription struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	FollowerID uint64    `gorm:"not null;index;uniqueIndex:uk_follower_author" json:"follower_id"`
	AuthorID   uint64    `gorm:"not null;index;uniqueIndex:uk_follower_author" json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Subscription) TableName() string { return "subscriptions" }
