package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"coopdesk/internal/api"
	"coopdesk/internal/domain"
	"coopdesk/internal/util/dateparse"
)

const (
	pathLogin  = "/api/auth/login"
	pathLogout = "/api/auth/logout"
	pathMe     = "/api/auth/me"
)

var (
	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrNoToken is returned when the API accepts a login but sends no token.
	ErrNoToken = errors.New("login response did not include a token")
)

// Target identifies the API and tenant the session belongs to.
type Target struct {
	APIURL string
	Tenant string
}

// Service manages the signed-in session.
type Service struct {
	anon     domain.APIClient
	authed   domain.APIClient
	sessions domain.SessionStore
	profiles domain.ProfileStore
	target   Target
	now      func() time.Time
}

// New returns an auth service. anon must not send a bearer token; authed
// must.
func New(
	anon, authed domain.APIClient,
	sessions domain.SessionStore,
	profiles domain.ProfileStore,
	target Target,
) *Service {
	return &Service{
		anon:     anon,
		authed:   authed,
		sessions: sessions,
		profiles: profiles,
		target:   target,
		now:      time.Now,
	}
}

// Login authenticates and persists the session and profile.
func (s *Service) Login(ctx context.Context, email, password, passphrase string) (domain.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Profile{}, ErrMissingCredentials
	}

	var res domain.AuthResult
	if _, err := s.anon.Do(ctx, http.MethodPost, pathLogin, nil,
		domain.Credentials{Email: email, Password: password}, &res); err != nil {
		return domain.Profile{}, fmt.Errorf("login: %w", err)
	}
	if res.Token == "" {
		return domain.Profile{}, ErrNoToken
	}

	sess := domain.Session{
		Token:  res.Token,
		APIURL: s.target.APIURL,
		Tenant: s.target.Tenant,
		Email:  email,
	}
	if exp, ok := dateparse.Parse(res.ExpiresAt, time.UTC); ok {
		sess.ExpiresAt = exp
	}
	if err := s.sessions.SaveSession(passphrase, sess); err != nil {
		return domain.Profile{}, fmt.Errorf("save session: %w", err)
	}

	role := res.User.Role
	if role == "" {
		role = domain.RoleMember
	}
	profile := domain.Profile{
		APIURL:   s.target.APIURL,
		Tenant:   s.target.Tenant,
		Email:    email,
		Name:     res.User.FullName(),
		Role:     role,
		Business: res.User.Business,
	}
	if err := s.profiles.SaveProfile(profile); err != nil {
		return domain.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

// Logout revokes the token server-side and clears the local session. A
// server failure other than an already-invalid token is reported after the
// local session is gone.
func (s *Service) Logout(ctx context.Context, passphrase string) error {
	_, remoteErr := s.authed.Do(ctx, http.MethodPost, pathLogout, nil, nil, nil)
	if err := s.sessions.ClearSession(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if remoteErr != nil && !errors.Is(remoteErr, api.ErrUnauthorized) {
		return fmt.Errorf("signed out locally; server logout failed: %w", remoteErr)
	}
	return nil
}

// Me returns the signed-in user as the API sees them.
func (s *Service) Me(ctx context.Context) (domain.Member, error) {
	var m domain.Member
	if _, err := s.authed.Do(ctx, http.MethodGet, pathMe, nil, nil, &m); err != nil {
		return domain.Member{}, err
	}
	return m, nil
}

// Profile returns the stored profile for the current target.
func (s *Service) Profile() (domain.Profile, bool, error) {
	return s.profiles.LoadProfile(s.target.APIURL, s.target.Tenant)
}

// Compile-time assertion that Service implements domain.AuthService.
var _ domain.AuthService = (*Service)(nil)
