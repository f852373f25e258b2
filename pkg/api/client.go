// Package api is the typed REST client for the travel planner backend.
// Auth: Authorization: Bearer <access_token>, attached by the transport.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/voyago/tripdeck/pkg/config"
	"github.com/voyago/tripdeck/pkg/transport"
)

// ListFilter narrows list endpoints. A zero TripID means no filter.
type ListFilter struct {
	TripID int64
}

// Client exposes one method per backend operation.
type Client struct {
	baseURL string
	paths   config.PathConfig
	tr      *transport.Client
}

// New creates an API client over the given transport.
func New(cfg *config.APIConfig, tr *transport.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		paths:   cfg.Paths,
		tr:      tr,
	}
}

func (c *Client) buildURL(path string, id int64) string {
	base := c.baseURL + path
	if id != 0 {
		return base + "/" + url.PathEscape(strconv.FormatInt(id, 10))
	}
	return base
}

func (c *Client) buildListURL(path string, filter ListFilter) string {
	base := c.baseURL + path
	if filter.TripID != 0 {
		q := url.Values{}
		q.Set("trip_id", strconv.FormatInt(filter.TripID, 10))
		return base + "?" + q.Encode()
	}
	return base
}

// decode unmarshals into out unless the response had no body.
func decode(raw []byte, out interface{}) error {
	if raw == nil || out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Login authenticates with email/password. No bearer header is attached.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.AuthLogin, 0), transport.Options{
		Method: http.MethodPost,
		Body:   map[string]string{"email": email, "password": password},
		NoAuth: true,
	})
	if err != nil {
		return nil, err
	}
	var res AuthResponse
	if err := decode(raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Register creates a new account. No bearer header is attached.
func (c *Client) Register(ctx context.Context, email, password, fullName string) (*AuthResponse, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.AuthRegister, 0), transport.Options{
		Method: http.MethodPost,
		Body:   map[string]string{"email": email, "password": password, "full_name": fullName},
		NoAuth: true,
	})
	if err != nil {
		return nil, err
	}
	var res AuthResponse
	if err := decode(raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Me returns the current user profile.
func (c *Client) Me(ctx context.Context) (*AuthResponse, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.AuthMe, 0), transport.Options{})
	if err != nil {
		return nil, err
	}
	var res AuthResponse
	if err := decode(raw, &res.User); err != nil {
		return nil, err
	}
	return &res, nil
}

// Trips

func (c *Client) ListTrips(ctx context.Context) ([]Trip, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.Trips, 0), transport.Options{})
	if err != nil {
		return nil, err
	}
	var items []Trip
	if err := decode(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateTrip(ctx context.Context, payload TripPayload) (*Trip, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.Trips, 0), transport.Options{
		Method: http.MethodPost,
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}
	var item Trip
	if err := decode(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateTrip(ctx context.Context, id int64, payload TripPayload) (*Trip, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.Trips, id), transport.Options{
		Method: http.MethodPut,
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}
	var item Trip
	if err := decode(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteTrip(ctx context.Context, id int64) error {
	_, err := c.tr.Request(ctx, c.buildURL(c.paths.Trips, id), transport.Options{
		Method: http.MethodDelete,
	})
	return err
}

// Destinations

func (c *Client) ListDestinations(ctx context.Context, filter ListFilter) ([]Destination, error) {
	raw, err := c.tr.Request(ctx, c.buildListURL(c.paths.Destinations, filter), transport.Options{})
	if err != nil {
		return nil, err
	}
	var items []Destination
	if err := decode(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateDestination(ctx context.Context, payload DestinationPayload) (*Destination, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.Destinations, 0), transport.Options{
		Method: http.MethodPost,
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}
	var item Destination
	if err := decode(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateDestination(ctx context.Context, id int64, payload DestinationPayload) (*Destination, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.Destinations, id), transport.Options{
		Method: http.MethodPut,
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}
	var item Destination
	if err := decode(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteDestination(ctx context.Context, id int64) error {
	_, err := c.tr.Request(ctx, c.buildURL(c.paths.Destinations, id), transport.Options{
		Method: http.MethodDelete,
	})
	return err
}

// Itinerary items

func (c *Client) ListItinerary(ctx context.Context, filter ListFilter) ([]ItineraryItem, error) {
	raw, err := c.tr.Request(ctx, c.buildListURL(c.paths.Itinerary, filter), transport.Options{})
	if err != nil {
		return nil, err
	}
	var items []ItineraryItem
	if err := decode(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateItineraryItem(ctx context.Context, payload ItineraryItemPayload) (*ItineraryItem, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.Itinerary, 0), transport.Options{
		Method: http.MethodPost,
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}
	var item ItineraryItem
	if err := decode(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateItineraryItem(ctx context.Context, id int64, payload ItineraryItemPayload) (*ItineraryItem, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.Itinerary, id), transport.Options{
		Method: http.MethodPut,
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}
	var item ItineraryItem
	if err := decode(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteItineraryItem(ctx context.Context, id int64) error {
	_, err := c.tr.Request(ctx, c.buildURL(c.paths.Itinerary, id), transport.Options{
		Method: http.MethodDelete,
	})
	return err
}

// Bookings

func (c *Client) ListBookings(ctx context.Context, filter ListFilter) ([]Booking, error) {
	raw, err := c.tr.Request(ctx, c.buildListURL(c.paths.Bookings, filter), transport.Options{})
	if err != nil {
		return nil, err
	}
	var items []Booking
	if err := decode(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateBooking(ctx context.Context, payload BookingPayload) (*Booking, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.Bookings, 0), transport.Options{
		Method: http.MethodPost,
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}
	var item Booking
	if err := decode(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id int64, payload BookingPayload) (*Booking, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.Bookings, id), transport.Options{
		Method: http.MethodPut,
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}
	var item Booking
	if err := decode(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	_, err := c.tr.Request(ctx, c.buildURL(c.paths.Bookings, id), transport.Options{
		Method: http.MethodDelete,
	})
	return err
}

// Favorites

func (c *Client) ListFavorites(ctx context.Context) ([]Favorite, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.Favorites, 0), transport.Options{})
	if err != nil {
		return nil, err
	}
	var items []Favorite
	if err := decode(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateFavorite(ctx context.Context, payload FavoritePayload) (*Favorite, error) {
	raw, err := c.tr.Request(ctx, c.buildURL(c.paths.Favorites, 0), transport.Options{
		Method: http.MethodPost,
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}
	var item Favorite
	if err := decode(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteFavorite(ctx context.Context, id int64) error {
	_, err := c.tr.Request(ctx, c.buildURL(c.paths.Favorites, id), transport.Options{
		Method: http.MethodDelete,
	})
	return err
}
