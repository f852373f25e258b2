package models

import (
	"time"

	"gorm.io/gorm"
)

// Trip represents a planned trip owning destinations, itinerary items and
// bookings
type Trip struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"not null;index" json:"-"`

	Name        string  `gorm:"not null" json:"name"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`

	// Relationships
	Destinations   []Destination   `gorm:"foreignKey:TripID" json:"-"`
	ItineraryItems []ItineraryItem `gorm:"foreignKey:TripID" json:"-"`
	Bookings       []Booking       `gorm:"foreignKey:TripID" json:"-"`
}

// Destination represents a place visited within a trip
type Destination struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"not null;index" json:"-"`
	TripID uint `gorm:"not null;index" json:"trip_id"`

	Name    string   `gorm:"not null" json:"name"`
	Country string   `json:"country"`
	Notes   string   `json:"notes"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// ItineraryItem represents a dated activity within a trip. DestinationID
// is a weak reference: it is not cleared when the destination goes away.
type ItineraryItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"not null;index" json:"-"`
	TripID uint `gorm:"not null;index" json:"trip_id"`

	Date          string  `gorm:"not null;index" json:"date"` // ISO 8601 calendar date
	Title         string  `gorm:"not null" json:"title"`
	Location      string  `json:"location"`
	Notes         string  `json:"notes"`
	DestinationID *uint   `json:"destination_id"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
}

// Booking represents a reservation attached to a trip
type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"not null;index" json:"-"`
	TripID uint `gorm:"not null;index" json:"trip_id"`

	Type      string  `gorm:"default:'Other'" json:"type"` // Flight, Hotel, Train, Car, Activity, Other
	Provider  string  `json:"provider"`
	Reference string  `json:"reference"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Notes     string  `json:"notes"`
}

// Favorite marks a destination as favorited by a user
type Favorite struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID        uint `gorm:"not null;index" json:"-"`
	DestinationID uint `gorm:"not null;index" json:"destination_id"`
}
