package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/tripdeck/pkg/events"
	"github.com/voyago/tripdeck/pkg/session"
)

func newTestClient(t *testing.T) (*Client, *session.MemoryStore, *events.Bus) {
	t.Helper()
	sess := session.NewMemory()
	bus := events.NewBus()
	return New(sess, bus, nil), sess, bus
}

func TestRequestAttachesBearerToken(t *testing.T) {
	client, sess, _ := newTestClient(t)
	require.NoError(t, sess.Persist("token-abc", nil))

	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, err := client.Request(context.Background(), srv.URL, Options{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestRequestNoAuthSkipsBearer(t *testing.T) {
	client, sess, _ := newTestClient(t)
	require.NoError(t, sess.Persist("token-abc", nil))

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := client.Request(context.Background(), srv.URL, Options{NoAuth: true})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRequestEmptyTokenSendsNoHeader(t *testing.T) {
	client, _, _ := newTestClient(t)

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, err := client.Request(context.Background(), srv.URL, Options{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRequestEncodesJSONBody(t *testing.T) {
	client, _, _ := newTestClient(t)

	var gotContentType string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	_, err := client.Request(context.Background(), srv.URL, Options{
		Method: http.MethodPost,
		Body:   map[string]string{"name": "Lisbon"},
	})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]string{"name": "Lisbon"}, gotBody)
}

func TestRequestNoContentReturnsNil(t *testing.T) {
	client, _, _ := newTestClient(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	body, err := client.Request(context.Background(), srv.URL, Options{Method: http.MethodDelete})
	require.NoError(t, err)
	assert.Nil(t, body)
}

func TestRequestTextResponseReturnedRaw(t *testing.T) {
	client, _, _ := newTestClient(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("pong"))
	}))
	defer srv.Close()

	body, err := client.Request(context.Background(), srv.URL, Options{})
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
}

func TestRequestInvalidJSONIsParseError(t *testing.T) {
	client, _, _ := newTestClient(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"broken`))
	}))
	defer srv.Close()

	_, err := client.Request(context.Background(), srv.URL, Options{})
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Failed to parse JSON response", parseErr.Error())
}

func TestRequestErrorDetailString(t *testing.T) {
	client, _, _ := newTestClient(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Trip not found"}`))
	}))
	defer srv.Close()

	_, err := client.Request(context.Background(), srv.URL, Options{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Trip not found", apiErr.Details)
}

func TestRequestErrorDetailList(t *testing.T) {
	client, _, _ := newTestClient(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"loc": ["body", "name"], "msg": "field required"}]}`))
	}))
	defer srv.Close()

	_, err := client.Request(context.Background(), srv.URL, Options{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	// structured details carry through as raw JSON
	assert.Contains(t, apiErr.Details, "field required")
}

func TestRequestErrorWithPlainBody(t *testing.T) {
	client, _, _ := newTestClient(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	_, err := client.Request(context.Background(), srv.URL, Options{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream down", apiErr.Details)
}

func TestUnauthorizedClearsSessionAndPublishes(t *testing.T) {
	client, sess, bus := newTestClient(t)
	require.NoError(t, sess.Persist("stale-token", &session.Profile{ID: 1, Email: "a@b.c"}))

	published := 0
	bus.Subscribe(func() { published++ })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid or expired token"}`))
	}))
	defer srv.Close()

	_, err := client.Request(context.Background(), srv.URL, Options{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	assert.Empty(t, sess.CurrentToken())
	assert.Nil(t, sess.CurrentUser())
	assert.Equal(t, 1, published)
}

func TestNonUnauthorizedErrorKeepsSession(t *testing.T) {
	client, sess, bus := newTestClient(t)
	require.NoError(t, sess.Persist("good-token", nil))

	published := 0
	bus.Subscribe(func() { published++ })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := client.Request(context.Background(), srv.URL, Options{})
	require.Error(t, err)

	assert.Equal(t, "good-token", sess.CurrentToken())
	assert.Equal(t, 0, published)
}

func TestRequestContextCancellation(t *testing.T) {
	client, _, _ := newTestClient(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Request(ctx, srv.URL, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
