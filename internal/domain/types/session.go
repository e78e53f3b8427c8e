package types

import "time"

// Session is the authenticated state kept encrypted on disk.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	APIURL    string    `json:"api_url"`
	Tenant    string    `json:"tenant,omitempty"`
	Email     string    `json:"email"`
}

// Expired reports whether the session has a known expiry before now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Profile is the non-secret identity of the signed-in user for one API and
// tenant pair.
type Profile struct {
	APIURL   string `json:"api_url"`
	Tenant   string `json:"tenant,omitempty"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Business string `json:"business,omitempty"`
}
