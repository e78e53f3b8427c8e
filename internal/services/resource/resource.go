// Package resource holds the small generic helpers the services use to
// call list, read and mutation endpoints through a domain.APIClient.
package resource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"coopdesk/internal/domain"
)

// List fetches one page of a collection.
func List[T any](ctx context.Context, c domain.APIClient, path string, q domain.ListQuery) ([]T, *domain.Pagination, error) {
	var items []T
	pg, err := c.Do(ctx, http.MethodGet, path, q.Values(), nil, &items)
	if err != nil {
		return nil, nil, err
	}
	return items, pg, nil
}

// maxPages bounds Every when a server's pagination never reaches the end.
const maxPages = 100

// Every fetches q's page and each page after it until the pagination says
// there are no more. A response without pagination is the only page.
func Every[T any](ctx context.Context, c domain.APIClient, path string, q domain.ListQuery) ([]T, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	var all []T
	for range maxPages {
		items, pg, err := List[T](ctx, c, path, q)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if pg == nil || !pg.HasNext() || len(items) == 0 {
			return all, nil
		}
		q.Page = pg.CurrentPage + 1
	}
	return nil, fmt.Errorf("%s: more than %d pages", path, maxPages)
}

// All fetches a collection that the API does not paginate.
func All[T any](ctx context.Context, c domain.APIClient, path string) ([]T, error) {
	var items []T
	if _, err := c.Do(ctx, http.MethodGet, path, nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a single resource.
func Get[T any](ctx context.Context, c domain.APIClient, path string) (T, error) {
	var v T
	if _, err := c.Do(ctx, http.MethodGet, path, nil, nil, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Send performs a mutation and decodes the returned data.
func Send[T any](ctx context.Context, c domain.APIClient, method, path string, body any) (T, error) {
	var v T
	if _, err := c.Do(ctx, method, path, nil, body, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Path joins a base path with escaped segments.
func Path(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// ID is Path for a resource identifier with an optional action suffix.
func ID(base string, id domain.ID, action ...string) string {
	return Path(base, append([]string{id.String()}, action...)...)
}
