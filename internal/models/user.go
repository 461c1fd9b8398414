// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account on the platform.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Profile   *Profile       `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Posts     []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// Profile holds per-user metadata. Exactly one per user; created at
// registration (to store the contact number) or lazily on first access.
type Profile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Bio           string    `gorm:"type:text" json:"bio"`
	Avatar        string    `json:"avatar"`
	Website       string    `json:"website"`
	ContactNumber string    `gorm:"size:10" json:"contact_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Completion returns the profile completion percentage over the
// avatar, bio and website fields.
func (p *Profile) Completion() int {
	filled := 0
	for _, f := range []string{p.Avatar, p.Bio, p.Website} {
		if f != "" {
			filled++
		}
	}
	return filled * 100 / 3
}
