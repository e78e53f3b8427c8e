package interfaces

import domaintypes "coopdesk/internal/domain/types"

// SessionStore persists the encrypted bearer token.
type SessionStore interface {
	SaveSession(passphrase string, session domaintypes.Session) error
	LoadSession(passphrase string) (domaintypes.Session, error)
	ClearSession() error
}

// ProfileStore persists per-API, per-tenant user profiles.
type ProfileStore interface {
	SaveProfile(profile domaintypes.Profile) error
	LoadProfile(apiURL, tenant string) (domaintypes.Profile, bool, error)
}
