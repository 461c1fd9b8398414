package models

import (
	"time"

	"gorm.io/gorm"
)

// Post categories offered by the platform.
const (
	CategoryGeneral    = "general"
	CategoryTech       = "tech"
	CategoryLifestyle  = "lifestyle"
	CategoryTravel     = "travel"
	CategoryFood       = "food"
	CategoryCreativity = "creativity"
)

// Categories lists the valid post categories.
var Categories = []string{
	CategoryGeneral,
	CategoryTech,
	CategoryLifestyle,
	CategoryTravel,
	CategoryFood,
	CategoryCreativity,
}

// Post represents a blog post.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Slug     string `gorm:"size:220;not null;uniqueIndex" json:"slug"`
	Category string `gorm:"size:32;not null;default:general;index" json:"category"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	// Votes is the cached count of active life votes; kept in sync by the
	// vote toggle transaction.
	Votes  int         `gorm:"not null;default:0" json:"votes"`
	Images []PostImage `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// IsBookmarked indicates whether the current requesting user bookmarked
	// this post (computed)
	IsBookmarked bool `gorm:"-" json:"is_bookmarked"`
	// UserVote is the requesting user's is_life flag, nil when they have
	// no vote row (computed)
	UserVote  *bool          `gorm:"-" json:"user_vote,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostImage is an ordered, captioned image attached to a post.
type PostImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_post_image_order" json:"post_id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	Caption   string    `json:"caption"`
	Order     int       `gorm:"not null;uniqueIndex:idx_post_image_order" json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidCategory reports whether c is one of the supported categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
