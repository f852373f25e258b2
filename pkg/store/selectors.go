package store

import "sort"

// Read helpers over snapshots; the view layer composes these instead of
// filtering raw lists itself.

// TripDetail bundles a trip with its dependent records.
type TripDetail struct {
	Trip           *Trip
	Destinations   []Destination
	ItineraryItems []ItineraryItem
	Bookings       []Booking
}

// SelectedTrip returns the trip with the given id plus its destinations,
// itinerary items, and bookings. Trip is nil when the id is unknown.
func (s *Store) SelectedTrip(tripID string) TripDetail {
	state := s.Snapshot()

	detail := TripDetail{}
	for i := range state.Data.Trips {
		if state.Data.Trips[i].ID == tripID {
			trip := state.Data.Trips[i]
			detail.Trip = &trip
			break
		}
	}
	for _, d := range state.Data.Destinations {
		if d.TripID == tripID {
			detail.Destinations = append(detail.Destinations, d)
		}
	}
	for _, i := range state.Data.ItineraryItems {
		if i.TripID == tripID {
			detail.ItineraryItems = append(detail.ItineraryItems, i)
		}
	}
	for _, b := range state.Data.Bookings {
		if b.TripID == tripID {
			detail.Bookings = append(detail.Bookings, b)
		}
	}
	return detail
}

// DaySchedule is one calendar day's itinerary.
type DaySchedule struct {
	Date  string
	Items []ItineraryItem
}

// ItineraryByDate groups itinerary items by calendar date, days ascending
// and items ordered by start time within a day. Items without a date are
// omitted; the calendar has nowhere to place them.
func (s *Store) ItineraryByDate() []DaySchedule {
	state := s.Snapshot()

	byDate := make(map[string][]ItineraryItem)
	for _, item := range state.Data.ItineraryItems {
		if item.Date == "" {
			continue
		}
		byDate[item.Date] = append(byDate[item.Date], item)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := make([]DaySchedule, 0, len(dates))
	for _, date := range dates {
		items := byDate[date]
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].StartTime < items[b].StartTime
		})
		out = append(out, DaySchedule{Date: date, Items: items})
	}
	return out
}
