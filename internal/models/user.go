// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered user. Email is the login identity.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	FirstName string    `gorm:"size:150" json:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name"`
	Password  string    `gorm:"size:150;not null" json:"-"`
	IsAdmin   bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// IsSubscribed indicates whether the requesting user follows this user (computed)
	IsSubscribed bool `gorm:"->;-:migration" json:"is_subscribed"`

	Recipes []Recipe `gorm:"foreignKey:AuthorID" json:"-"`
}

// Subscription links a subscriber to a recipe author.
// A user may follow an author at most once and never themselves.
type Subscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubscriberID uint      `gorm:"not null;uniqueIndex:idx_subscriber_author" json:"subscriber_id"`
	Subscriber   User      `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID     uint      `gorm:"not null;uniqueIndex:idx_subscriber_author" json:"author_id"`
	Author       User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
