// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Default image URLs assigned at signup when the client provides none.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents an account in the Warbler application.
// Rows are hard-deleted: removing a user cascades to their messages,
// likes and follow edges (see repository.UserRepository.Delete and the
// ON DELETE CASCADE constraints in migrations/).
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"unique;not null" json:"username"`
	Email          string    `gorm:"unique;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	ImageURL       string    `json:"image_url"`
	HeaderImageURL string    `json:"header_image_url"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Messages       []Message `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}
