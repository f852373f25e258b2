package models

import (
	"gorm.io/gorm"
)

// Database migration function
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Trip{},
		&Destination{},
		&ItineraryItem{},
		&Booking{},
		&Favorite{},
	)
}

func CreateIndexes(db *gorm.DB) error {
	// Composite indexes for common queries
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_itinerary_items_user_trip_date ON itinerary_items(user_id, trip_id, date)").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_favorites_user_destination ON favorites(user_id, destination_id)").Error; err != nil {
		return err
	}

	return nil
}
