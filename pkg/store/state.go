package store

import "github.com/voyago/tripdeck/pkg/session"

// AuthStatus is the authentication state machine. Bootstrapping is a
// transient phase tracked separately, not an auth state.
type AuthStatus string

const (
	AuthAnonymous     AuthStatus = "anonymous"
	AuthAuthenticated AuthStatus = "authenticated"
)

// AuthState mirrors the persisted session. The token here is a
// convenience cache; the session store remains authoritative.
type AuthState struct {
	Status AuthStatus
	User   *session.Profile
	Token  string
}

// DataState holds the five resource lists.
type DataState struct {
	Trips          []Trip
	Destinations   []Destination
	ItineraryItems []ItineraryItem
	Bookings       []Booking
	Favorites      []Favorite
}

// ResourceFlags tracks a per-resource boolean, one slot per resource kind
// plus auth.
type ResourceFlags struct {
	Trips        bool
	Destinations bool
	Itinerary    bool
	Bookings     bool
	Favorites    bool
	Auth         bool
}

// ResourceErrors tracks a per-resource error message ("" when clear).
type ResourceErrors struct {
	Trips        string
	Destinations string
	Itinerary    string
	Bookings     string
	Favorites    string
	Auth         string
}

// StatusState groups the transient flags.
type StatusState struct {
	Bootstrapping bool
	Loading       ResourceFlags
	Error         ResourceErrors
}

// State is an immutable snapshot of the application state. Every action
// produces a new snapshot; callers never share nested mutable structure
// with the store.
type State struct {
	Auth   AuthState
	Data   DataState
	Status StatusState
}

// Result is the tagged outcome of every store action. Actions never
// panic or return raw errors for expected failures; UI code branches on
// OK only.
type Result struct {
	OK    bool
	Error string
}

func ok() Result             { return Result{OK: true} }
func fail(msg string) Result { return Result{OK: false, Error: msg} }

func initialState() State {
	return State{
		Auth: AuthState{Status: AuthAnonymous},
		Status: StatusState{
			Bootstrapping: true,
		},
	}
}

// clone deep-copies the snapshot so a returned State never aliases the
// store's current slices.
func (s State) clone() State {
	out := s
	out.Data.Trips = append([]Trip(nil), s.Data.Trips...)
	out.Data.Destinations = append([]Destination(nil), s.Data.Destinations...)
	out.Data.ItineraryItems = append([]ItineraryItem(nil), s.Data.ItineraryItems...)
	out.Data.Bookings = append([]Booking(nil), s.Data.Bookings...)
	out.Data.Favorites = append([]Favorite(nil), s.Data.Favorites...)
	if s.Auth.User != nil {
		user := *s.Auth.User
		out.Auth.User = &user
	}
	return out
}
