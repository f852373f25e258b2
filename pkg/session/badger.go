package session

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is the durable Store implementation, backed by a badger
// key-value database under a per-user directory.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the session database in dir.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Persist stores the access token and user profile.
func (s *BadgerStore) Persist(token string, user *Profile) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if token != "" {
			if err := txn.Set([]byte(tokenKey), []byte(token)); err != nil {
				return err
			}
		}
		if user != nil {
			raw, err := json.Marshal(user)
			if err != nil {
				return err
			}
			if err := txn.Set([]byte(userKey), raw); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear removes the token and the user profile.
func (s *BadgerStore) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(tokenKey)); err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		if err := txn.Delete([]byte(userKey)); err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		return nil
	})
}

// CurrentToken returns the persisted access token, or "" when absent.
func (s *BadgerStore) CurrentToken() string {
	return string(s.get(tokenKey))
}

// CurrentUser returns the persisted profile, or nil when absent or corrupt.
func (s *BadgerStore) CurrentUser() *Profile {
	return decodeProfile(s.get(userKey))
}

func (s *BadgerStore) get(key string) []byte {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil
	}
	return out
}
