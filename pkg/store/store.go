// Package store reconciles local UI state with the remote REST API under
// an auth session. It owns the authentication lifecycle, bootstrap,
// coordinated multi-resource refresh, and per-resource actions with
// independent loading/error tracking. View code reads snapshots and
// branches on tagged results; it never handles raw errors.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/voyago/tripdeck/pkg/api"
	"github.com/voyago/tripdeck/pkg/events"
	"github.com/voyago/tripdeck/pkg/log"
	"github.com/voyago/tripdeck/pkg/session"
	"github.com/voyago/tripdeck/pkg/transport"
)

// Store is the application store. All state lives in a single current
// snapshot guarded by a mutex; actions replace it wholesale.
type Store struct {
	mu    sync.Mutex
	state State

	api     *api.Client
	session session.Store
	bus     *events.Bus
	logger  *log.Logger

	unsubscribe func()

	watchMu  sync.Mutex
	watchers map[int]func(State)
	watchID  int
}

// New creates the store and subscribes it to the unauthorized-event bus,
// so a 401 detected anywhere in the transport forces a logged-out state
// regardless of which action triggered it.
func New(apiClient *api.Client, sess session.Store, bus *events.Bus, logger *log.Logger) *Store {
	s := &Store{
		state:    initialState(),
		api:      apiClient,
		session:  sess,
		bus:      bus,
		logger:   logger,
		watchers: make(map[int]func(State)),
	}
	s.unsubscribe = bus.Subscribe(s.forcedLogout)
	return s
}

// Close detaches the store from the event bus.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Watch registers a callback invoked with a fresh snapshot after every
// state change. Returns an unsubscribe function.
func (s *Store) Watch(fn func(State)) (unsubscribe func()) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	id := s.watchID
	s.watchID++
	s.watchers[id] = fn

	return func() {
		s.watchMu.Lock()
		defer s.watchMu.Unlock()
		delete(s.watchers, id)
	}
}

// mutate applies fn to the current state under the lock and notifies
// watchers with the resulting snapshot.
func (s *Store) mutate(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.watchMu.Lock()
	fns := make([]func(State), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.watchMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// Bootstrap restores session state from persisted storage, runs once
// before first interactive render. A persisted user is trusted without
// server re-validation (fast first paint); an expired token surfaces as a
// 401 on the first subsequent call, which forces logout.
func (s *Store) Bootstrap(ctx context.Context) {
	s.mutate(func(st *State) { st.Status.Bootstrapping = true })

	if user := s.session.CurrentUser(); user != nil {
		// The token stays in the session store; the transport reads it on
		// demand for every request.
		s.mutate(func(st *State) {
			st.Auth = AuthState{Status: AuthAuthenticated, User: user}
			st.Status.Loading.Auth = false
			st.Status.Error.Auth = ""
		})
		s.RefreshAll(ctx)
	}

	s.mutate(func(st *State) { st.Status.Bootstrapping = false })
}

// Login authenticates via the backend, persists the session, and loads
// all resources.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	s.mutate(func(st *State) {
		st.Status.Loading.Auth = true
		st.Status.Error.Auth = ""
	})

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return s.authFailed(err, "Login failed", "login")
	}
	return s.authSucceeded(ctx, res, "login")
}

// Register creates an account and starts a session with it.
func (s *Store) Register(ctx context.Context, email, password, fullName string) Result {
	s.mutate(func(st *State) {
		st.Status.Loading.Auth = true
		st.Status.Error.Auth = ""
	})

	res, err := s.api.Register(ctx, email, password, fullName)
	if err != nil {
		return s.authFailed(err, "Registration failed", "register")
	}
	return s.authSucceeded(ctx, res, "register")
}

func (s *Store) authSucceeded(ctx context.Context, res *api.AuthResponse, action string) Result {
	if err := s.session.Persist(res.AccessToken, res.User); err != nil {
		return s.authFailed(err, "Failed to persist session", action)
	}

	s.mutate(func(st *State) {
		st.Auth = AuthState{Status: AuthAuthenticated, User: res.User, Token: res.AccessToken}
		st.Status.Loading.Auth = false
		st.Status.Error.Auth = ""
	})

	if s.logger != nil && res.User != nil {
		s.logger.LogAuth(uint(res.User.ID), res.User.Email, action, true)
	}

	s.RefreshAll(ctx)
	return ok()
}

func (s *Store) authFailed(err error, fallback, action string) Result {
	msg := errorMessage(err, fallback)
	s.mutate(func(st *State) {
		st.Auth = AuthState{Status: AuthAnonymous}
		st.Status.Loading.Auth = false
		st.Status.Error.Auth = msg
	})
	if s.logger != nil {
		s.logger.LogAuth(0, "", action, false)
	}
	return fail(msg)
}

// Logout clears the persisted session and resets state. No stale data
// survives: resource lists are emptied so one user's data cannot leak
// into another session on the same device. Calling it twice is a no-op
// the second time.
func (s *Store) Logout() {
	if err := s.session.Clear(); err != nil && s.logger != nil {
		s.logger.WithError(err).Error("Failed to clear session store")
	}
	s.mutate(func(st *State) {
		st.Auth = AuthState{Status: AuthAnonymous}
		st.Data = DataState{}
	})
}

// forcedLogout reacts to a 401 published on the bus. The transport has
// already cleared the session store; clearing again is harmless and keeps
// the effect identical to an explicit logout.
func (s *Store) forcedLogout() {
	if s.logger != nil {
		s.logger.Warn("Forced logout: session rejected by backend")
	}
	s.Logout()
}

// errorMessage normalizes an action error to the user-facing message:
// server-provided details when present, the error text otherwise, a
// static fallback as a last resort.
func errorMessage(err error, fallback string) string {
	var apiErr *transport.APIError
	if errors.As(err, &apiErr) && apiErr.Details != "" {
		return apiErr.Details
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
