package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"coopdesk/internal/domain"
	"coopdesk/internal/util/memzero"
)

const sessionFilename = "session.enc"

// ErrNotLoggedIn is returned when no session has been saved.
var ErrNotLoggedIn = errors.New("not logged in: run `coopdesk login`")

// ErrPassphraseRequired is returned when a passphrase is needed but empty.
var ErrPassphraseRequired = errors.New("passphrase required (-p)")

// SessionFileStore keeps the bearer token encrypted on disk.
type SessionFileStore struct {
	dir string
	kdf kdfParams
	mu  sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir string) *SessionFileStore {
	return &SessionFileStore{dir: dir, kdf: defaultKDF}
}

// SaveSession encrypts and writes the session.
func (s *SessionFileStore) SaveSession(passphrase string, sess domain.Session) error {
	if passphrase == "" {
		return ErrPassphraseRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)

	blob, err := seal(passphrase, raw, s.kdf)
	if err != nil {
		return err
	}
	return WriteFileAtomic(filepath.Join(s.dir, sessionFilename), blob, 0o600)
}

// LoadSession reads and decrypts the session.
func (s *SessionFileStore) LoadSession(passphrase string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, sessionFilename))
	if err != nil {
		return domain.Session{}, err
	}
	if b == nil {
		return domain.Session{}, ErrNotLoggedIn
	}
	if passphrase == "" {
		return domain.Session{}, ErrPassphraseRequired
	}
	pt, err := open(passphrase, b)
	if err != nil {
		return domain.Session{}, err
	}
	defer memzero.Zero(pt)

	var sess domain.Session
	if err := json.Unmarshal(pt, &sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

// ClearSession removes the session file. A missing file is not an error.
func (s *SessionFileStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, sessionFilename))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)
