package models

import "time"

// Vote is the single up-vote-style signal on a post. One row per
// (user, post); toggling flips IsLife rather than inserting duplicates.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_vote_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_vote_user_post" json:"post_id"`
	IsLife    bool      `gorm:"not null;default:true" json:"is_life"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
