package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered user with email/password authentication
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	FullName     string `json:"full_name,omitempty"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Relationships
	Trips     []Trip     `gorm:"foreignKey:UserID" json:"-"`
	Favorites []Favorite `gorm:"foreignKey:UserID" json:"-"`
}
