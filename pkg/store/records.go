package store

// UI records: string ids, normalized optionals (empty string or nil,
// never a missing-vs-present distinction), ready for form binding.

// BookingType enumerates the booking kinds the dashboard offers.
type BookingType string

const (
	BookingFlight   BookingType = "Flight"
	BookingHotel    BookingType = "Hotel"
	BookingTrain    BookingType = "Train"
	BookingCar      BookingType = "Car"
	BookingActivity BookingType = "Activity"
	BookingOther    BookingType = "Other"
)

// Trip is the UI trip record. An empty ID marks a draft not yet created.
type Trip struct {
	ID        string
	Name      string
	StartDate string
	EndDate   string
	Notes     string
}

// Destination is the UI destination record. Lat/Lng are nil when the
// backend holds no coordinates.
type Destination struct {
	ID      string
	TripID  string
	Name    string
	Country string
	Notes   string
	Lat     *float64
	Lng     *float64
}

// ItineraryItem is the UI itinerary record. DestinationID is a weak
// reference and may dangle after the destination is removed.
type ItineraryItem struct {
	ID            string
	TripID        string
	Date          string // ISO 8601 calendar date
	Title         string
	Location      string
	Notes         string
	DestinationID string
	StartTime     string
	EndTime       string
}

// Booking is the UI booking record. The UI uses a single date, mapped to
// the wire start_date.
type Booking struct {
	ID        string
	TripID    string
	Type      BookingType
	Provider  string
	Reference string
	Date      string
}

// Favorite references a destination by id; this is the backend contract,
// not the local-only name/category variant.
type Favorite struct {
	ID            string
	DestinationID string
}
