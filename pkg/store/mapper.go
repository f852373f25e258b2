package store

import (
	"strconv"
	"strings"

	"github.com/voyago/tripdeck/pkg/api"
	"github.com/voyago/tripdeck/pkg/transport"
)

// Mappers between wire records and UI records. Pure and stateless; field
// renames are fixed and total. Wire fields the UI never surfaces (booking
// end_date/notes) are dropped on toUI and reconstructed as empty on
// fromUI.

// parseRecordID coerces a UI string id back to its numeric wire form. A
// non-numeric id surfaces as a validation error before any request is
// sent, never as a silent wrong request.
func parseRecordID(field, id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, &transport.ValidationError{Field: field, Message: "not a valid id: " + id}
	}
	return n, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// deref converts a nullable wire string to the UI empty-string default.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nullable converts a UI empty string back to a wire null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func tripToUI(t api.Trip) Trip {
	return Trip{
		ID:        formatID(t.ID),
		Name:      t.Name,
		StartDate: deref(t.StartDate),
		EndDate:   deref(t.EndDate),
		Notes:     t.Description,
	}
}

func tripFromUI(d Trip) api.TripPayload {
	return api.TripPayload{
		Name:        strings.TrimSpace(d.Name),
		StartDate:   nullable(d.StartDate),
		EndDate:     nullable(d.EndDate),
		Description: d.Notes,
	}
}

func destinationToUI(d api.Destination) Destination {
	return Destination{
		ID:      formatID(d.ID),
		TripID:  formatID(d.TripID),
		Name:    d.Name,
		Country: d.Country,
		Notes:   d.Notes,
		Lat:     d.Lat,
		Lng:     d.Lng,
	}
}

func destinationFromUI(d Destination) (api.DestinationPayload, error) {
	tripID, err := parseRecordID("destination.tripId", d.TripID)
	if err != nil {
		return api.DestinationPayload{}, err
	}
	return api.DestinationPayload{
		TripID:  tripID,
		Name:    strings.TrimSpace(d.Name),
		Country: d.Country,
		Notes:   d.Notes,
		Lat:     d.Lat,
		Lng:     d.Lng,
	}, nil
}

func itineraryItemToUI(i api.ItineraryItem) ItineraryItem {
	destinationID := ""
	if i.DestinationID != nil {
		destinationID = formatID(*i.DestinationID)
	}
	return ItineraryItem{
		ID:            formatID(i.ID),
		TripID:        formatID(i.TripID),
		Date:          i.Date,
		Title:         i.Title,
		Location:      i.Location,
		Notes:         i.Notes,
		DestinationID: destinationID,
		StartTime:     deref(i.StartTime),
		EndTime:       deref(i.EndTime),
	}
}

func itineraryItemFromUI(d ItineraryItem) (api.ItineraryItemPayload, error) {
	tripID, err := parseRecordID("itineraryItem.tripId", d.TripID)
	if err != nil {
		return api.ItineraryItemPayload{}, err
	}
	var destinationID *int64
	if d.DestinationID != "" {
		id, err := parseRecordID("itineraryItem.destinationId", d.DestinationID)
		if err != nil {
			return api.ItineraryItemPayload{}, err
		}
		destinationID = &id
	}
	return api.ItineraryItemPayload{
		TripID:        tripID,
		Date:          d.Date,
		Title:         strings.TrimSpace(d.Title),
		Location:      d.Location,
		Notes:         d.Notes,
		DestinationID: destinationID,
		StartTime:     nullable(d.StartTime),
		EndTime:       nullable(d.EndTime),
	}, nil
}

func bookingToUI(b api.Booking) Booking {
	bookingType := BookingType(b.Type)
	if bookingType == "" {
		bookingType = BookingOther
	}
	return Booking{
		ID:        formatID(b.ID),
		TripID:    formatID(b.TripID),
		Type:      bookingType,
		Provider:  b.Provider,
		Reference: b.Reference,
		Date:      deref(b.StartDate),
	}
}

func bookingFromUI(d Booking) (api.BookingPayload, error) {
	tripID, err := parseRecordID("booking.tripId", d.TripID)
	if err != nil {
		return api.BookingPayload{}, err
	}
	bookingType := d.Type
	if bookingType == "" {
		bookingType = BookingOther
	}
	return api.BookingPayload{
		TripID:    tripID,
		Type:      string(bookingType),
		Provider:  d.Provider,
		Reference: d.Reference,
		StartDate: nullable(d.Date),
		EndDate:   nil,
		Notes:     "",
	}, nil
}

func favoriteToUI(f api.Favorite) Favorite {
	return Favorite{
		ID:            formatID(f.ID),
		DestinationID: formatID(f.DestinationID),
	}
}

func mapSlice[W, U any](items []W, fn func(W) U) []U {
	out := make([]U, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
