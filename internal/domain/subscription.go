package domain

import "time"

// Subscription makes follower receive author's recipes in their feed.
// Self-follow is rejected at the service level; duplicates by the unique index.
type Subscription struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	FollowerID int64     `json:"follower_id" gorm:"not null;index;uniqueIndex:idx_sub_follower_author"`
	AuthorID   int64     `json:"author_id" gorm:"not null;index;uniqueIndex:idx_sub_follower_author"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (Subscription) TableName() string { return "subscriptions" }
