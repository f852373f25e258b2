package store

import (
	"context"
	"strings"
	"sync"

	"github.com/voyago/tripdeck/pkg/api"
)

// RefreshAll fetches all five resource kinds concurrently. Each kind's
// loading flag and error slot settle independently; a failure in one
// fetch never blocks or fails the others. Returns a failure result
// carrying the combined error messages when any fetch failed.
//
// A fetch that completes after the session was invalidated mid-refresh
// (a 401 on a sibling request forces logout) is discarded: logout empties
// the resource lists and nothing may repopulate them while logged out.
func (s *Store) RefreshAll(ctx context.Context) Result {
	s.mutate(func(st *State) {
		st.Status.Loading = ResourceFlags{
			Trips:        true,
			Destinations: true,
			Itinerary:    true,
			Bookings:     true,
			Favorites:    true,
			Auth:         st.Status.Loading.Auth,
		}
		st.Status.Error = ResourceErrors{Auth: st.Status.Error.Auth}
	})

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		failures []string
	)

	record := func(resource string, count int, err error, fallback string) {
		if err == nil {
			if s.logger != nil {
				s.logger.LogSync(resource, count, true, "")
			}
			return
		}
		msg := errorMessage(err, fallback)
		if s.logger != nil {
			s.logger.LogSync(resource, 0, false, msg)
		}
		errMu.Lock()
		failures = append(failures, msg)
		errMu.Unlock()
	}

	wg.Add(5)

	go func() {
		defer wg.Done()
		items, err := s.api.ListTrips(ctx)
		s.mutate(func(st *State) {
			if err == nil && st.Auth.Status == AuthAuthenticated {
				st.Data.Trips = mapSlice(items, tripToUI)
			} else if err != nil {
				st.Status.Error.Trips = errorMessage(err, "Failed to load trips")
			}
			st.Status.Loading.Trips = false
		})
		record("trips", len(items), err, "Failed to load trips")
	}()

	go func() {
		defer wg.Done()
		items, err := s.api.ListDestinations(ctx, api.ListFilter{})
		s.mutate(func(st *State) {
			if err == nil && st.Auth.Status == AuthAuthenticated {
				st.Data.Destinations = mapSlice(items, destinationToUI)
			} else if err != nil {
				st.Status.Error.Destinations = errorMessage(err, "Failed to load destinations")
			}
			st.Status.Loading.Destinations = false
		})
		record("destinations", len(items), err, "Failed to load destinations")
	}()

	go func() {
		defer wg.Done()
		items, err := s.api.ListItinerary(ctx, api.ListFilter{})
		s.mutate(func(st *State) {
			if err == nil && st.Auth.Status == AuthAuthenticated {
				st.Data.ItineraryItems = mapSlice(items, itineraryItemToUI)
			} else if err != nil {
				st.Status.Error.Itinerary = errorMessage(err, "Failed to load itinerary")
			}
			st.Status.Loading.Itinerary = false
		})
		record("itinerary", len(items), err, "Failed to load itinerary")
	}()

	go func() {
		defer wg.Done()
		items, err := s.api.ListBookings(ctx, api.ListFilter{})
		s.mutate(func(st *State) {
			if err == nil && st.Auth.Status == AuthAuthenticated {
				st.Data.Bookings = mapSlice(items, bookingToUI)
			} else if err != nil {
				st.Status.Error.Bookings = errorMessage(err, "Failed to load bookings")
			}
			st.Status.Loading.Bookings = false
		})
		record("bookings", len(items), err, "Failed to load bookings")
	}()

	go func() {
		defer wg.Done()
		items, err := s.api.ListFavorites(ctx)
		s.mutate(func(st *State) {
			if err == nil && st.Auth.Status == AuthAuthenticated {
				st.Data.Favorites = mapSlice(items, favoriteToUI)
			} else if err != nil {
				st.Status.Error.Favorites = errorMessage(err, "Failed to load favorites")
			}
			st.Status.Loading.Favorites = false
		})
		record("favorites", len(items), err, "Failed to load favorites")
	}()

	wg.Wait()

	if len(failures) > 0 {
		return fail(strings.Join(failures, "; "))
	}
	return ok()
}

// UpsertTrip creates the trip when the draft has no id, updates it
// otherwise, then refetches the trips list wholesale so the UI reflects
// exactly what the server holds.
func (s *Store) UpsertTrip(ctx context.Context, draft Trip) Result {
	s.setLoading(resourceTrips, true)
	defer s.setLoading(resourceTrips, false)

	payload := tripFromUI(draft)
	var err error
	if draft.ID != "" {
		var id int64
		if id, err = parseRecordID("trip.id", draft.ID); err == nil {
			_, err = s.api.UpdateTrip(ctx, id, payload)
		}
	} else {
		_, err = s.api.CreateTrip(ctx, payload)
	}
	if err != nil {
		return s.resourceFailed(resourceTrips, err, "Failed to save trip")
	}

	return s.reloadTrips(ctx)
}

// RemoveTrip deletes a trip, then refreshes every resource list: the
// backend cascade-deletes dependents and only a full refresh observes it.
func (s *Store) RemoveTrip(ctx context.Context, id string) Result {
	s.setLoading(resourceTrips, true)
	defer s.setLoading(resourceTrips, false)

	numericID, err := parseRecordID("trip.id", id)
	if err == nil {
		err = s.api.DeleteTrip(ctx, numericID)
	}
	if err != nil {
		return s.resourceFailed(resourceTrips, err, "Failed to delete trip")
	}

	return s.RefreshAll(ctx)
}

// UpsertDestination creates or updates a destination and refetches the
// destinations list.
func (s *Store) UpsertDestination(ctx context.Context, draft Destination) Result {
	s.setLoading(resourceDestinations, true)
	defer s.setLoading(resourceDestinations, false)

	payload, err := destinationFromUI(draft)
	if err == nil {
		if draft.ID != "" {
			var id int64
			if id, err = parseRecordID("destination.id", draft.ID); err == nil {
				_, err = s.api.UpdateDestination(ctx, id, payload)
			}
		} else {
			_, err = s.api.CreateDestination(ctx, payload)
		}
	}
	if err != nil {
		return s.resourceFailed(resourceDestinations, err, "Failed to save destination")
	}

	return s.reloadDestinations(ctx)
}

// RemoveDestination deletes a destination and refreshes all resources:
// favorites referencing it are cascade-deleted server-side, and itinerary
// items may now hold a dangling reference worth re-reading.
func (s *Store) RemoveDestination(ctx context.Context, id string) Result {
	s.setLoading(resourceDestinations, true)
	defer s.setLoading(resourceDestinations, false)

	numericID, err := parseRecordID("destination.id", id)
	if err == nil {
		err = s.api.DeleteDestination(ctx, numericID)
	}
	if err != nil {
		return s.resourceFailed(resourceDestinations, err, "Failed to delete destination")
	}

	return s.RefreshAll(ctx)
}

// UpsertItineraryItem creates or updates an itinerary item and refetches
// the itinerary list.
func (s *Store) UpsertItineraryItem(ctx context.Context, draft ItineraryItem) Result {
	s.setLoading(resourceItinerary, true)
	defer s.setLoading(resourceItinerary, false)

	payload, err := itineraryItemFromUI(draft)
	if err == nil {
		if draft.ID != "" {
			var id int64
			if id, err = parseRecordID("itineraryItem.id", draft.ID); err == nil {
				_, err = s.api.UpdateItineraryItem(ctx, id, payload)
			}
		} else {
			_, err = s.api.CreateItineraryItem(ctx, payload)
		}
	}
	if err != nil {
		return s.resourceFailed(resourceItinerary, err, "Failed to save itinerary item")
	}

	return s.reloadItinerary(ctx)
}

// RemoveItineraryItem deletes an itinerary item; nothing depends on it,
// so refetching its own list suffices.
func (s *Store) RemoveItineraryItem(ctx context.Context, id string) Result {
	s.setLoading(resourceItinerary, true)
	defer s.setLoading(resourceItinerary, false)

	numericID, err := parseRecordID("itineraryItem.id", id)
	if err == nil {
		err = s.api.DeleteItineraryItem(ctx, numericID)
	}
	if err != nil {
		return s.resourceFailed(resourceItinerary, err, "Failed to delete itinerary item")
	}

	return s.reloadItinerary(ctx)
}

// UpsertBooking creates or updates a booking and refetches the bookings
// list.
func (s *Store) UpsertBooking(ctx context.Context, draft Booking) Result {
	s.setLoading(resourceBookings, true)
	defer s.setLoading(resourceBookings, false)

	payload, err := bookingFromUI(draft)
	if err == nil {
		if draft.ID != "" {
			var id int64
			if id, err = parseRecordID("booking.id", draft.ID); err == nil {
				_, err = s.api.UpdateBooking(ctx, id, payload)
			}
		} else {
			_, err = s.api.CreateBooking(ctx, payload)
		}
	}
	if err != nil {
		return s.resourceFailed(resourceBookings, err, "Failed to save booking")
	}

	return s.reloadBookings(ctx)
}

// RemoveBooking deletes a booking and refetches the bookings list.
func (s *Store) RemoveBooking(ctx context.Context, id string) Result {
	s.setLoading(resourceBookings, true)
	defer s.setLoading(resourceBookings, false)

	numericID, err := parseRecordID("booking.id", id)
	if err == nil {
		err = s.api.DeleteBooking(ctx, numericID)
	}
	if err != nil {
		return s.resourceFailed(resourceBookings, err, "Failed to delete booking")
	}

	return s.reloadBookings(ctx)
}

// AddFavorite favorites a destination by id.
func (s *Store) AddFavorite(ctx context.Context, destinationID string) Result {
	s.setLoading(resourceFavorites, true)
	defer s.setLoading(resourceFavorites, false)

	numericID, err := parseRecordID("favorite.destinationId", destinationID)
	if err == nil {
		_, err = s.api.CreateFavorite(ctx, api.FavoritePayload{DestinationID: numericID})
	}
	if err != nil {
		return s.resourceFailed(resourceFavorites, err, "Failed to add favorite")
	}

	return s.reloadFavorites(ctx)
}

// RemoveFavorite removes a favorite by favorite id.
func (s *Store) RemoveFavorite(ctx context.Context, id string) Result {
	s.setLoading(resourceFavorites, true)
	defer s.setLoading(resourceFavorites, false)

	numericID, err := parseRecordID("favorite.id", id)
	if err == nil {
		err = s.api.DeleteFavorite(ctx, numericID)
	}
	if err != nil {
		return s.resourceFailed(resourceFavorites, err, "Failed to remove favorite")
	}

	return s.reloadFavorites(ctx)
}

// resource keys used by the shared loading/error plumbing

type resourceKind int

const (
	resourceTrips resourceKind = iota
	resourceDestinations
	resourceItinerary
	resourceBookings
	resourceFavorites
)

func (s *Store) setLoading(kind resourceKind, value bool) {
	s.mutate(func(st *State) {
		switch kind {
		case resourceTrips:
			st.Status.Loading.Trips = value
		case resourceDestinations:
			st.Status.Loading.Destinations = value
		case resourceItinerary:
			st.Status.Loading.Itinerary = value
		case resourceBookings:
			st.Status.Loading.Bookings = value
		case resourceFavorites:
			st.Status.Loading.Favorites = value
		}
	})
}

func (s *Store) resourceFailed(kind resourceKind, err error, fallback string) Result {
	msg := errorMessage(err, fallback)
	s.mutate(func(st *State) {
		switch kind {
		case resourceTrips:
			st.Status.Error.Trips = msg
		case resourceDestinations:
			st.Status.Error.Destinations = msg
		case resourceItinerary:
			st.Status.Error.Itinerary = msg
		case resourceBookings:
			st.Status.Error.Bookings = msg
		case resourceFavorites:
			st.Status.Error.Favorites = msg
		}
	})
	return fail(msg)
}

// The reload helpers carry the same post-logout guard as RefreshAll: a
// list fetched just before a sibling 401 forced logout stays discarded.

func (s *Store) reloadTrips(ctx context.Context) Result {
	items, err := s.api.ListTrips(ctx)
	if err != nil {
		return s.resourceFailed(resourceTrips, err, "Failed to load trips")
	}
	s.mutate(func(st *State) {
		if st.Auth.Status != AuthAuthenticated {
			return
		}
		st.Data.Trips = mapSlice(items, tripToUI)
		st.Status.Error.Trips = ""
	})
	return ok()
}

func (s *Store) reloadDestinations(ctx context.Context) Result {
	items, err := s.api.ListDestinations(ctx, api.ListFilter{})
	if err != nil {
		return s.resourceFailed(resourceDestinations, err, "Failed to load destinations")
	}
	s.mutate(func(st *State) {
		if st.Auth.Status != AuthAuthenticated {
			return
		}
		st.Data.Destinations = mapSlice(items, destinationToUI)
		st.Status.Error.Destinations = ""
	})
	return ok()
}

func (s *Store) reloadItinerary(ctx context.Context) Result {
	items, err := s.api.ListItinerary(ctx, api.ListFilter{})
	if err != nil {
		return s.resourceFailed(resourceItinerary, err, "Failed to load itinerary")
	}
	s.mutate(func(st *State) {
		if st.Auth.Status != AuthAuthenticated {
			return
		}
		st.Data.ItineraryItems = mapSlice(items, itineraryItemToUI)
		st.Status.Error.Itinerary = ""
	})
	return ok()
}

func (s *Store) reloadBookings(ctx context.Context) Result {
	items, err := s.api.ListBookings(ctx, api.ListFilter{})
	if err != nil {
		return s.resourceFailed(resourceBookings, err, "Failed to load bookings")
	}
	s.mutate(func(st *State) {
		if st.Auth.Status != AuthAuthenticated {
			return
		}
		st.Data.Bookings = mapSlice(items, bookingToUI)
		st.Status.Error.Bookings = ""
	})
	return ok()
}

func (s *Store) reloadFavorites(ctx context.Context) Result {
	items, err := s.api.ListFavorites(ctx)
	if err != nil {
		return s.resourceFailed(resourceFavorites, err, "Failed to load favorites")
	}
	s.mutate(func(st *State) {
		if st.Auth.Status != AuthAuthenticated {
			return
		}
		st.Data.Favorites = mapSlice(items, favoriteToUI)
		st.Status.Error.Favorites = ""
	})
	return ok()
}
