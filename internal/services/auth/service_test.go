package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopdesk/internal/api"
	"coopdesk/internal/domain"
	"coopdesk/internal/services/auth"
	"coopdesk/internal/services/servicetest"
	"coopdesk/internal/store"
)

type memSessions struct {
	pass    string
	session *domain.Session
	clears  int
}

func (m *memSessions) SaveSession(pass string, s domain.Session) error {
	m.pass, m.session = pass, &s
	return nil
}

func (m *memSessions) LoadSession(pass string) (domain.Session, error) {
	if m.session == nil {
		return domain.Session{}, store.ErrNotLoggedIn
	}
	return *m.session, nil
}

func (m *memSessions) ClearSession() error {
	m.clears++
	m.session = nil
	return nil
}

type memProfiles map[string]domain.Profile

func (m memProfiles) SaveProfile(p domain.Profile) error {
	m[p.APIURL+"|"+p.Tenant] = p
	return nil
}

func (m memProfiles) LoadProfile(apiURL, tenant string) (domain.Profile, bool, error) {
	p, ok := m[apiURL+"|"+tenant]
	return p, ok, nil
}

var target = auth.Target{APIURL: "http://api.test", Tenant: "green-acres"}

func TestLogin_StoresSessionAndProfile(t *testing.T) {
	anon := servicetest.New().On(http.MethodPost, "/api/auth/login", map[string]any{
		"token":      "tok-1",
		"expires_at": "2030-01-02T03:04:05Z",
		"user": map[string]any{
			"id": 7, "first_name": "Ada", "last_name": "Obi", "email": "ada@example.com",
			"role": "admin", "business_name": "Green Acres",
		},
	})
	sessions := &memSessions{}
	profiles := memProfiles{}
	svc := auth.New(anon, servicetest.New(), sessions, profiles, target)

	p, err := svc.Login(context.Background(), " ada@example.com ", "secret", "pass")
	require.NoError(t, err)
	assert.Equal(t, domain.Profile{
		APIURL: "http://api.test", Tenant: "green-acres", Email: "ada@example.com",
		Name: "Ada Obi", Role: domain.RoleAdmin, Business: "Green Acres",
	}, p)

	require.NotNil(t, sessions.session)
	assert.Equal(t, "pass", sessions.pass)
	assert.Equal(t, "tok-1", sessions.session.Token)
	assert.True(t, sessions.session.ExpiresAt.Equal(time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)))
	assert.Equal(t, domain.Credentials{Email: "ada@example.com", Password: "secret"}, anon.Calls()[0].Body)

	stored, ok, err := svc.Profile()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, p, stored)
}

func TestLogin_DefaultsRoleToMember(t *testing.T) {
	anon := servicetest.New().On(http.MethodPost, "/api/auth/login", map[string]any{"token": "t", "user": map[string]any{}})
	p, err := auth.New(anon, servicetest.New(), &memSessions{}, memProfiles{}, target).
		Login(context.Background(), "a@b.c", "x", "pass")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, p.Role)
}

func TestLogin_Failures(t *testing.T) {
	sessions := &memSessions{}
	svc := auth.New(servicetest.New().
		Fail(http.MethodPost, "/api/auth/login", &api.Error{Status: http.StatusUnprocessableEntity, Message: "Invalid credentials"}),
		servicetest.New(), sessions, memProfiles{}, target)

	_, err := svc.Login(context.Background(), "", "x", "p")
	assert.ErrorIs(t, err, auth.ErrMissingCredentials)

	_, err = svc.Login(context.Background(), "a@b.c", "bad", "p")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", api.UserMessage(err))
	assert.Nil(t, sessions.session)

	noToken := auth.New(servicetest.New().On(http.MethodPost, "/api/auth/login", map[string]any{"token": ""}),
		servicetest.New(), sessions, memProfiles{}, target)
	_, err = noToken.Login(context.Background(), "a@b.c", "x", "p")
	assert.ErrorIs(t, err, auth.ErrNoToken)
}

func TestLogout_ClearsEvenWhenServerFails(t *testing.T) {
	sessions := &memSessions{session: &domain.Session{Token: "t"}}
	authed := servicetest.New().Fail(http.MethodPost, "/api/auth/logout", errors.New("connection refused"))
	svc := auth.New(servicetest.New(), authed, sessions, memProfiles{}, target)

	err := svc.Logout(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signed out locally")
	assert.Nil(t, sessions.session)
	assert.Equal(t, 1, sessions.clears)
}

func TestLogout_ExpiredTokenIsNotAnError(t *testing.T) {
	sessions := &memSessions{session: &domain.Session{Token: "t"}}
	authed := servicetest.New().Fail(http.MethodPost, "/api/auth/logout", &api.Error{Status: http.StatusUnauthorized})
	svc := auth.New(servicetest.New(), authed, sessions, memProfiles{}, target)

	require.NoError(t, svc.Logout(context.Background(), "p"))
	assert.Nil(t, sessions.session)
}

func TestMe(t *testing.T) {
	authed := servicetest.New().On(http.MethodGet, "/api/auth/me", map[string]any{"id": "u-1", "email": "a@b.c"})
	m, err := auth.New(servicetest.New(), authed, &memSessions{}, memProfiles{}, target).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ID("u-1"), m.ID)
}
