package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopdesk/internal/domain"
	"coopdesk/internal/store"
)

func TestProfile_SaveLoad(t *testing.T) {
	var ps domain.ProfileStore = store.NewProfileFileStore(t.TempDir())

	p := domain.Profile{
		APIURL: "https://api.example.coop/",
		Tenant: "lekki",
		Email:  "admin@lekki.coop",
		Name:   "Bola Admin",
		Role:   domain.RoleAdmin,
	}
	require.NoError(t, ps.SaveProfile(p))

	got, ok, err := ps.LoadProfile("https://api.example.coop", "lekki")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p, got)

	_, ok, err = ps.LoadProfile("https://api.example.coop", "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfile_KeepsTenantsApart(t *testing.T) {
	ps := store.NewProfileFileStore(t.TempDir())
	require.NoError(t, ps.SaveProfile(domain.Profile{APIURL: "u", Tenant: "a", Email: "a@x"}))
	require.NoError(t, ps.SaveProfile(domain.Profile{APIURL: "u", Tenant: "b", Email: "b@x"}))
	require.NoError(t, ps.SaveProfile(domain.Profile{APIURL: "u", Tenant: "a", Email: "a2@x"}))

	a, _, err := ps.LoadProfile("u", "a")
	require.NoError(t, err)
	b, _, err := ps.LoadProfile("u", "b")
	require.NoError(t, err)
	assert.Equal(t, "a2@x", a.Email)
	assert.Equal(t, "b@x", b.Email)
}
