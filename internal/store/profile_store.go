package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"coopdesk/internal/domain"
)

const profilesFile = "profiles.json"

// ProfileFileStore persists per-API, per-tenant user profiles to disk.
type ProfileFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewProfileFileStore returns a ProfileFileStore rooted at dir.
func NewProfileFileStore(dir string) *ProfileFileStore {
	return &ProfileFileStore{dir: dir}
}

// SaveProfile stores or updates the given profile.
func (s *ProfileFileStore) SaveProfile(profile domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, profilesFile)
	profiles := make(map[string]domain.Profile)
	if err := readJSON(path, &profiles); err != nil {
		return err
	}
	profiles[profileKey(profile.APIURL, profile.Tenant)] = profile
	return writeJSON(path, profiles, 0o600)
}

// LoadProfile retrieves the profile for (apiURL, tenant).
func (s *ProfileFileStore) LoadProfile(apiURL, tenant string) (domain.Profile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles := make(map[string]domain.Profile)
	if err := readJSON(filepath.Join(s.dir, profilesFile), &profiles); err != nil {
		return domain.Profile{}, false, err
	}
	p, ok := profiles[profileKey(apiURL, tenant)]
	return p, ok, nil
}

func profileKey(apiURL, tenant string) string {
	return fmt.Sprintf("%s|%s", strings.TrimRight(apiURL, "/"), tenant)
}

// Compile-time assertion that ProfileFileStore implements domain.ProfileStore.
var _ domain.ProfileStore = (*ProfileFileStore)(nil)
