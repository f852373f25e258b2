package api

import "github.com/voyago/tripdeck/pkg/session"

// Wire records: the JSON representation exchanged with the backend
// (snake_case fields, numeric ids, nullable optionals as pointers).

// AuthResponse is returned by login and register.
type AuthResponse struct {
	AccessToken string           `json:"access_token"`
	User        *session.Profile `json:"user"`
}

// Trip is the wire trip record.
type Trip struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
}

// TripPayload is the create/update body for a trip.
type TripPayload struct {
	Name        string  `json:"name"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
}

// Destination is the wire destination record.
type Destination struct {
	ID      int64    `json:"id"`
	TripID  int64    `json:"trip_id"`
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Notes   string   `json:"notes"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// DestinationPayload is the create/update body for a destination.
type DestinationPayload struct {
	TripID  int64    `json:"trip_id"`
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Notes   string   `json:"notes"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// ItineraryItem is the wire itinerary record. Date is an ISO 8601
// calendar date; start/end times are optional HH:MM strings.
type ItineraryItem struct {
	ID            int64   `json:"id"`
	TripID        int64   `json:"trip_id"`
	Date          string  `json:"date"`
	Title         string  `json:"title"`
	Location      string  `json:"location"`
	Notes         string  `json:"notes"`
	DestinationID *int64  `json:"destination_id"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
}

// ItineraryItemPayload is the create/update body for an itinerary item.
type ItineraryItemPayload struct {
	TripID        int64   `json:"trip_id"`
	Date          string  `json:"date"`
	Title         string  `json:"title"`
	Location      string  `json:"location"`
	Notes         string  `json:"notes"`
	DestinationID *int64  `json:"destination_id"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
}

// Booking is the wire booking record. The UI surfaces only start_date (as
// its single date); end_date and notes stay wire-only.
type Booking struct {
	ID        int64   `json:"id"`
	TripID    int64   `json:"trip_id"`
	Type      string  `json:"type"`
	Provider  string  `json:"provider"`
	Reference string  `json:"reference"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Notes     string  `json:"notes"`
}

// BookingPayload is the create/update body for a booking.
type BookingPayload struct {
	TripID    int64   `json:"trip_id"`
	Type      string  `json:"type"`
	Provider  string  `json:"provider"`
	Reference string  `json:"reference"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Notes     string  `json:"notes"`
}

// Favorite is the wire favorite record: a reference to a destination, not
// a free-form place.
type Favorite struct {
	ID            int64 `json:"id"`
	DestinationID int64 `json:"destination_id"`
}

// FavoritePayload is the create body for a favorite.
type FavoritePayload struct {
	DestinationID int64 `json:"destination_id"`
}
