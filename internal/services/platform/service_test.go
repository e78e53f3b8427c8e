package platform_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopdesk/internal/domain"
	"coopdesk/internal/services/platform"
	"coopdesk/internal/services/servicetest"
)

func TestCreateBusiness_NormalisesAndValidates(t *testing.T) {
	fake := servicetest.New().On(http.MethodPost, "/api/super-admin/businesses",
		map[string]any{"id": 3, "name": "Green Acres", "slug": "green-acres", "status": "active"})
	svc := platform.New(fake)

	b, err := svc.CreateBusiness(context.Background(), domain.BusinessRequest{
		Name: " Green Acres ", Slug: "Green-Acres", Email: "ops@green.example",
	})
	require.NoError(t, err)
	assert.Equal(t, "green-acres", b.Slug)
	assert.Equal(t, domain.BusinessRequest{Name: "Green Acres", Slug: "green-acres", Email: "ops@green.example"},
		fake.Calls()[0].Body)

	_, err = svc.CreateBusiness(context.Background(), domain.BusinessRequest{Name: "x", Slug: "bad slug", Email: "a@b.c"})
	assert.ErrorIs(t, err, platform.ErrInvalidSlug)
	_, err = svc.CreateBusiness(context.Background(), domain.BusinessRequest{Name: "x", Slug: "ok", Email: "nope"})
	assert.Error(t, err)
	assert.Len(t, fake.Calls(), 1)
}

func TestSuspendBusiness_Refetches(t *testing.T) {
	fake := servicetest.New().
		On(http.MethodPost, "/api/super-admin/businesses/3/suspend", nil).
		On(http.MethodGet, "/api/super-admin/businesses/3", map[string]any{"id": 3, "status": "suspended"})

	b, err := platform.New(fake).SuspendBusiness(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "suspended", b.Status)
}

func TestPackagesAndSubscriptions(t *testing.T) {
	fake := servicetest.New().
		On(http.MethodGet, "/api/super-admin/packages", []map[string]any{{"id": 1, "name": "Basic", "price": "15000"}}).
		OnPage(http.MethodGet, "/api/super-admin/subscriptions",
			[]map[string]any{{"id": 1, "business_name": "Acme", "amount": 15000}},
			&domain.Pagination{CurrentPage: 1, LastPage: 1, Total: 1})
	svc := platform.New(fake)

	pkgs, err := svc.Packages(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.InDelta(t, 15000, pkgs[0].Price.Float(), 1e-9)

	subs, pg, err := svc.Subscriptions(context.Background(), domain.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, subs, 1)
	assert.False(t, pg.HasNext())
}
