package db

import (
	"github.com/voyago/tripdeck/pkg/models"
	"gorm.io/gorm"
)

// Repository provides database operations for specific models. Every
// query is scoped to the owning user.
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) DB() *DB {
	return r.db
}

// User repository methods

func (r *Repository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *Repository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *Repository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

// Trip repository methods

func (r *Repository) CreateTrip(trip *models.Trip) error {
	return r.db.Create(trip).Error
}

func (r *Repository) GetTripsByUserID(userID uint) ([]models.Trip, error) {
	var trips []models.Trip
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&trips).Error
	return trips, err
}

func (r *Repository) GetTripByID(userID, id uint) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.Where("user_id = ?", userID).First(&trip, id).Error
	return &trip, err
}

func (r *Repository) UpdateTrip(trip *models.Trip) error {
	return r.db.Save(trip).Error
}

// DeleteTrip removes a trip and cascade-deletes its destinations,
// itinerary items, bookings, and favorites of those destinations.
func (r *Repository) DeleteTrip(userID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var destinationIDs []uint
		if err := tx.Model(&models.Destination{}).
			Where("user_id = ? AND trip_id = ?", userID, id).
			Pluck("id", &destinationIDs).Error; err != nil {
			return err
		}

		if len(destinationIDs) > 0 {
			if err := tx.Where("user_id = ? AND destination_id IN ?", userID, destinationIDs).
				Delete(&models.Favorite{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ? AND trip_id = ?", userID, id).
			Delete(&models.Destination{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND trip_id = ?", userID, id).
			Delete(&models.ItineraryItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND trip_id = ?", userID, id).
			Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.Trip{}, id).Error
	})
}

// Destination repository methods

func (r *Repository) CreateDestination(destination *models.Destination) error {
	return r.db.Create(destination).Error
}

func (r *Repository) GetDestinationsByUserID(userID uint, tripID uint) ([]models.Destination, error) {
	var destinations []models.Destination
	q := r.db.Where("user_id = ?", userID)
	if tripID != 0 {
		q = q.Where("trip_id = ?", tripID)
	}
	err := q.Order("id").Find(&destinations).Error
	return destinations, err
}

func (r *Repository) GetDestinationByID(userID, id uint) (*models.Destination, error) {
	var destination models.Destination
	err := r.db.Where("user_id = ?", userID).First(&destination, id).Error
	return &destination, err
}

func (r *Repository) UpdateDestination(destination *models.Destination) error {
	return r.db.Save(destination).Error
}

// DeleteDestination removes a destination and the favorites referencing
// it. Itinerary items keep their destination_id; a dangling weak
// reference is acceptable.
func (r *Repository) DeleteDestination(userID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND destination_id = ?", userID, id).
			Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.Destination{}, id).Error
	})
}

// Itinerary item repository methods

func (r *Repository) CreateItineraryItem(item *models.ItineraryItem) error {
	return r.db.Create(item).Error
}

func (r *Repository) GetItineraryItemsByUserID(userID uint, tripID uint) ([]models.ItineraryItem, error) {
	var items []models.ItineraryItem
	q := r.db.Where("user_id = ?", userID)
	if tripID != 0 {
		q = q.Where("trip_id = ?", tripID)
	}
	err := q.Order("date, id").Find(&items).Error
	return items, err
}

func (r *Repository) GetItineraryItemByID(userID, id uint) (*models.ItineraryItem, error) {
	var item models.ItineraryItem
	err := r.db.Where("user_id = ?", userID).First(&item, id).Error
	return &item, err
}

func (r *Repository) UpdateItineraryItem(item *models.ItineraryItem) error {
	return r.db.Save(item).Error
}

func (r *Repository) DeleteItineraryItem(userID, id uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.ItineraryItem{}, id).Error
}

// Booking repository methods

func (r *Repository) CreateBooking(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *Repository) GetBookingsByUserID(userID uint, tripID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.Where("user_id = ?", userID)
	if tripID != 0 {
		q = q.Where("trip_id = ?", tripID)
	}
	err := q.Order("id").Find(&bookings).Error
	return bookings, err
}

func (r *Repository) GetBookingByID(userID, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Where("user_id = ?", userID).First(&booking, id).Error
	return &booking, err
}

func (r *Repository) UpdateBooking(booking *models.Booking) error {
	return r.db.Save(booking).Error
}

func (r *Repository) DeleteBooking(userID, id uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Booking{}, id).Error
}

// Favorite repository methods

func (r *Repository) CreateFavorite(favorite *models.Favorite) error {
	return r.db.Create(favorite).Error
}

func (r *Repository) GetFavoritesByUserID(userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&favorites).Error
	return favorites, err
}

func (r *Repository) DeleteFavorite(userID, id uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Favorite{}, id).Error
}
