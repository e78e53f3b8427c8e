package store

import (
	"errors"
	"sync"
	"time"

	"coopdesk/internal/domain"
)

// ErrSessionExpired is returned when the stored token is past its expiry.
var ErrSessionExpired = errors.New("session expired: run `coopdesk login`")

// SessionTokens adapts a SessionStore into a domain.TokenSource. The
// session is decrypted once and cached, since scrypt is deliberately slow.
type SessionTokens struct {
	store      domain.SessionStore
	passphrase string
	now        func() time.Time

	once sync.Once
	tok  string
	err  error
}

// NewSessionTokens returns a token source that unlocks the session with
// passphrase on first use.
func NewSessionTokens(s domain.SessionStore, passphrase string) *SessionTokens {
	return &SessionTokens{store: s, passphrase: passphrase, now: time.Now}
}

// Token returns the bearer token. No saved session yields an empty token so
// anonymous endpoints still work; the API answers 401 for the rest.
func (t *SessionTokens) Token() (string, error) {
	t.once.Do(func() {
		sess, err := t.store.LoadSession(t.passphrase)
		switch {
		case errors.Is(err, ErrNotLoggedIn):
			return
		case err != nil:
			t.err = err
		case sess.Expired(t.now()):
			t.err = ErrSessionExpired
		default:
			t.tok = sess.Token
		}
	})
	return t.tok, t.err
}

var _ domain.TokenSource = (*SessionTokens)(nil)
