package webserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/tripdeck/pkg/config"
	"github.com/voyago/tripdeck/pkg/db"
	"github.com/voyago/tripdeck/pkg/log"
)

type testServer struct {
	server *Server
	t      *testing.T
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:   "sqlite",
			Database: filepath.Join(t.TempDir(), "test.db"),
		},
		Security: config.SecurityConfig{
			JWTSecret:          "test-secret",
			JWTExpirationHours: 1,
			RateLimitEnabled:   false,
		},
		Logging: config.LoggingConfig{
			Level:  "error",
			Format: "text",
			Output: "stdout",
		},
	}

	logger, err := log.New(&cfg.Logging)
	require.NoError(t, err)

	database, err := db.New(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Migrate())

	server, err := New(cfg, database, logger)
	require.NoError(t, err)

	return &testServer{server: server, t: t}
}

func (ts *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.server.Router().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) decode(rec *httptest.ResponseRecorder, out interface{}) {
	ts.t.Helper()
	require.NoError(ts.t, json.Unmarshal(rec.Body.Bytes(), out))
}

// register creates an account and returns its bearer token
func (ts *testServer) register(email string) string {
	ts.t.Helper()

	rec := ts.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":     email,
		"password":  "correct-horse",
		"full_name": "Test User",
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())

	var res struct {
		AccessToken string `json:"access_token"`
	}
	ts.decode(rec, &res)
	require.NotEmpty(ts.t, res.AccessToken)
	return res.AccessToken
}

func (ts *testServer) createTrip(token, name string) int {
	ts.t.Helper()

	rec := ts.do(http.MethodPost, "/trips", token, map[string]interface{}{"name": name})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())

	var trip struct {
		ID int `json:"id"`
	}
	ts.decode(rec, &trip)
	return trip.ID
}

func (ts *testServer) createDestination(token string, tripID int, name string) int {
	ts.t.Helper()

	rec := ts.do(http.MethodPost, "/destinations", token, map[string]interface{}{
		"trip_id": tripID,
		"name":    name,
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())

	var dest struct {
		ID int `json:"id"`
	}
	ts.decode(rec, &dest)
	return dest.ID
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.register("ada@example.com")

	rec := ts.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		AccessToken string `json:"access_token"`
		User        struct {
			Email    string `json:"email"`
			FullName string `json:"full_name"`
		} `json:"user"`
	}
	ts.decode(rec, &res)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, "Test User", res.User.FullName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.register("ada@example.com")

	rec := ts.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", detailOf(t, rec))
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.register("ada@example.com")

	rec := ts.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", detailOf(t, rec))
}

func TestMeReturnsProfile(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("ada@example.com")

	rec := ts.do(http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user struct {
		Email string `json:"email"`
	}
	ts.decode(rec, &user)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/auth/me", "/trips", "/destinations", "/itinerary", "/bookings", "/favorites"} {
		rec := ts.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.NotEmpty(t, detailOf(t, rec), path)
	}
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/trips", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", detailOf(t, rec))
}

func TestTripCRUD(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("ada@example.com")

	id := ts.createTrip(token, "Japan 2026")

	rec := ts.do(http.MethodGet, "/trips", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trips []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	ts.decode(rec, &trips)
	require.Len(t, trips, 1)
	assert.Equal(t, "Japan 2026", trips[0].Name)

	rec = ts.do(http.MethodPut, fmt.Sprintf("/trips/%d", id), token, map[string]interface{}{
		"name":        "Japan, spring 2026",
		"start_date":  "2026-04-01",
		"description": "Cherry blossoms",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Name        string  `json:"name"`
		StartDate   *string `json:"start_date"`
		Description string  `json:"description"`
	}
	ts.decode(rec, &updated)
	assert.Equal(t, "Japan, spring 2026", updated.Name)
	require.NotNil(t, updated.StartDate)
	assert.Equal(t, "2026-04-01", *updated.StartDate)
	assert.Equal(t, "Cherry blossoms", updated.Description)

	rec = ts.do(http.MethodDelete, fmt.Sprintf("/trips/%d", id), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, "/trips", token, nil)
	ts.decode(rec, &trips)
	assert.Empty(t, trips)
}

func TestTripValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("ada@example.com")

	rec := ts.do(http.MethodPost, "/trips", token, map[string]interface{}{
		"name":       "Japan",
		"start_date": "01/04/2026",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Dates must use YYYY-MM-DD format", detailOf(t, rec))

	rec = ts.do(http.MethodPost, "/trips", token, map[string]interface{}{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteTripCascades(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("ada@example.com")

	tripID := ts.createTrip(token, "Japan 2026")
	destID := ts.createDestination(token, tripID, "Kyoto")

	rec := ts.do(http.MethodPost, "/itinerary", token, map[string]interface{}{
		"trip_id":        tripID,
		"date":           "2026-04-02",
		"title":          "Fushimi Inari",
		"destination_id": destID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodPost, "/bookings", token, map[string]interface{}{
		"trip_id": tripID,
		"type":    "Flight",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodPost, "/favorites", token, map[string]interface{}{
		"destination_id": destID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodDelete, fmt.Sprintf("/trips/%d", tripID), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	for _, path := range []string{"/destinations", "/itinerary", "/bookings", "/favorites"} {
		rec = ts.do(http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		var items []json.RawMessage
		ts.decode(rec, &items)
		assert.Empty(t, items, path)
	}
}

func TestDeleteDestinationRemovesFavoritesButKeepsItinerary(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("ada@example.com")

	tripID := ts.createTrip(token, "Japan 2026")
	destID := ts.createDestination(token, tripID, "Kyoto")

	rec := ts.do(http.MethodPost, "/itinerary", token, map[string]interface{}{
		"trip_id":        tripID,
		"date":           "2026-04-02",
		"title":          "Fushimi Inari",
		"destination_id": destID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(http.MethodPost, "/favorites", token, map[string]interface{}{
		"destination_id": destID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(http.MethodDelete, fmt.Sprintf("/destinations/%d", destID), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, "/favorites", token, nil)
	var favorites []json.RawMessage
	ts.decode(rec, &favorites)
	assert.Empty(t, favorites)

	// the itinerary item keeps its dangling destination reference
	rec = ts.do(http.MethodGet, "/itinerary", token, nil)
	var items []struct {
		DestinationID *int `json:"destination_id"`
	}
	ts.decode(rec, &items)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].DestinationID)
	assert.Equal(t, destID, *items[0].DestinationID)
}

func TestTripIDFilter(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("ada@example.com")

	tripA := ts.createTrip(token, "Japan 2026")
	tripB := ts.createTrip(token, "Iceland 2026")
	ts.createDestination(token, tripA, "Kyoto")
	ts.createDestination(token, tripB, "Reykjavik")

	rec := ts.do(http.MethodGet, fmt.Sprintf("/destinations?trip_id=%d", tripA), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var destinations []struct {
		Name string `json:"name"`
	}
	ts.decode(rec, &destinations)
	require.Len(t, destinations, 1)
	assert.Equal(t, "Kyoto", destinations[0].Name)
}

func TestUserScoping(t *testing.T) {
	ts := newTestServer(t)
	adaToken := ts.register("ada@example.com")
	graceToken := ts.register("grace@example.com")

	tripID := ts.createTrip(adaToken, "Japan 2026")

	rec := ts.do(http.MethodGet, "/trips", graceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trips []json.RawMessage
	ts.decode(rec, &trips)
	assert.Empty(t, trips)

	// a foreign id reads as not found, not forbidden
	rec = ts.do(http.MethodDelete, fmt.Sprintf("/trips/%d", tripID), graceToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingTypeValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("ada@example.com")
	tripID := ts.createTrip(token, "Japan 2026")

	rec := ts.do(http.MethodPost, "/bookings", token, map[string]interface{}{
		"trip_id": tripID,
		"type":    "Spaceship",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Invalid booking type", detailOf(t, rec))

	// empty type defaults to Other
	rec = ts.do(http.MethodPost, "/bookings", token, map[string]interface{}{
		"trip_id": tripID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var booking struct {
		Type string `json:"type"`
	}
	ts.decode(rec, &booking)
	assert.Equal(t, "Other", booking.Type)
}

func TestUnknownRouteReturnsDetail(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", detailOf(t, rec))
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
