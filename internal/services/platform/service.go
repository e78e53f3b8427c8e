package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"coopdesk/internal/domain"
	"coopdesk/internal/services/resource"
)

const (
	pathBusinesses    = "/api/super-admin/businesses"
	pathSubscriptions = "/api/super-admin/subscriptions"
	pathPackages      = "/api/super-admin/packages"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ErrInvalidSlug is returned for a tenant slug that is not lowercase
// letters, digits and single hyphens.
var ErrInvalidSlug = errors.New("slug must be lowercase letters, digits and hyphens (e.g. green-acres)")

// Service implements domain.PlatformService.
type Service struct {
	api domain.APIClient
}

// New returns a platform service.
func New(api domain.APIClient) *Service {
	return &Service{api: api}
}

// Businesses lists tenants.
func (s *Service) Businesses(ctx context.Context, q domain.ListQuery) ([]domain.Business, *domain.Pagination, error) {
	return resource.List[domain.Business](ctx, s.api, pathBusinesses, q)
}

// CreateBusiness registers a tenant.
func (s *Service) CreateBusiness(ctx context.Context, req domain.BusinessRequest) (domain.Business, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Name == "":
		return domain.Business{}, errors.New("business name is required")
	case !slugPattern.MatchString(req.Slug):
		return domain.Business{}, ErrInvalidSlug
	case !strings.Contains(req.Email, "@"):
		return domain.Business{}, fmt.Errorf("contact email %q is not an email address", req.Email)
	}
	return resource.Send[domain.Business](ctx, s.api, http.MethodPost, pathBusinesses, req)
}

// SuspendBusiness suspends a tenant and returns it refetched.
func (s *Service) SuspendBusiness(ctx context.Context, id domain.ID) (domain.Business, error) {
	return s.setState(ctx, id, "suspend")
}

// ActivateBusiness reactivates a tenant and returns it refetched.
func (s *Service) ActivateBusiness(ctx context.Context, id domain.ID) (domain.Business, error) {
	return s.setState(ctx, id, "activate")
}

func (s *Service) setState(ctx context.Context, id domain.ID, action string) (domain.Business, error) {
	if _, err := s.api.Do(ctx, http.MethodPost, resource.ID(pathBusinesses, id, action), nil, nil, nil); err != nil {
		return domain.Business{}, fmt.Errorf("%s business %s: %w", action, id, err)
	}
	b, err := resource.Get[domain.Business](ctx, s.api, resource.ID(pathBusinesses, id))
	if err != nil {
		return domain.Business{}, fmt.Errorf("refetch business %s: %w", id, err)
	}
	return b, nil
}

// Subscriptions lists tenant subscriptions.
func (s *Service) Subscriptions(ctx context.Context, q domain.ListQuery) ([]domain.Subscription, *domain.Pagination, error) {
	return resource.List[domain.Subscription](ctx, s.api, pathSubscriptions, q)
}

// Packages lists subscription tiers.
func (s *Service) Packages(ctx context.Context) ([]domain.Package, error) {
	return resource.All[domain.Package](ctx, s.api, pathPackages)
}

// Compile-time assertion that Service implements domain.PlatformService.
var _ domain.PlatformService = (*Service)(nil)
