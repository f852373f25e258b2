// Package session persists the auth session (access token + user profile)
// on the local machine, playing the role browser localStorage plays for the
// web dashboard. The persisted token is the authoritative credential; any
// in-memory copy elsewhere is a convenience cache.
package session

import "encoding/json"

// Storage keys, fixed by the persisted-state contract.
const (
	tokenKey = "tp_access_token"
	userKey  = "tp_user"
)

// Profile is the persisted user profile.
type Profile struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// Store is the session persistence contract. All operations are
// synchronous; CurrentToken and CurrentUser never fail: corrupt or missing
// stored values read back as empty.
type Store interface {
	// Persist stores the access token and user profile. Empty token or nil
	// user leaves the corresponding slot untouched.
	Persist(token string, user *Profile) error

	// Clear removes both the token and the user profile.
	Clear() error

	// CurrentToken returns the persisted access token, or "" when absent.
	CurrentToken() string

	// CurrentUser returns the persisted profile, or nil when absent or
	// undecodable.
	CurrentUser() *Profile
}

// decodeProfile fails soft: corrupt storage must never crash the app.
func decodeProfile(raw []byte) *Profile {
	if len(raw) == 0 {
		return nil
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}
