package session

import (
	"encoding/json"
	"sync"
)

// MemoryStore is a map-backed Store for tests and ephemeral runs. It holds
// the same JSON encoding a durable store would, so corrupt-value behavior
// can be exercised by seeding raw bytes.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory session store.
func NewMemory() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Persist stores the access token and user profile.
func (s *MemoryStore) Persist(token string, user *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != "" {
		s.values[tokenKey] = []byte(token)
	}
	if user != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			return err
		}
		s.values[userKey] = raw
	}
	return nil
}

// Clear removes the token and the user profile.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, tokenKey)
	delete(s.values, userKey)
	return nil
}

// CurrentToken returns the stored access token, or "" when absent.
func (s *MemoryStore) CurrentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return string(s.values[tokenKey])
}

// CurrentUser returns the stored profile, or nil when absent or corrupt.
func (s *MemoryStore) CurrentUser() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	return decodeProfile(s.values[userKey])
}

// SeedRawUser stores raw bytes under the user key, bypassing encoding.
// Tests use it to simulate corrupt storage.
func (s *MemoryStore) SeedRawUser(raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[userKey] = append([]byte(nil), raw...)
}
