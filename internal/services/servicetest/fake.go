// Package servicetest provides an in-memory domain.APIClient for service
// tests. Responses round-trip through JSON so decoding behaves like the
// real client.
package servicetest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/goccy/go-json"

	"coopdesk/internal/api"
	"coopdesk/internal/domain"
)

// Call is one recorded request.
type Call struct {
	Method   string
	Path     string
	Query    url.Values
	Body     any
	Field    string
	Filename string
	File     string
	Fields   map[string]string
}

type response struct {
	data any
	page *domain.Pagination
	err  error
}

// API is a scripted domain.APIClient.
type API struct {
	mu     sync.Mutex
	calls  []Call
	routes map[string]response
	paged  map[string][]response
}

// New returns an API with no routes.
func New() *API {
	return &API{routes: make(map[string]response), paged: make(map[string][]response)}
}

func key(method, path string) string { return method + " " + path }

// On answers method and path with data.
func (a *API) On(method, path string, data any) *API {
	return a.OnPage(method, path, data, nil)
}

// OnPage answers method and path with data and a pagination block.
func (a *API) OnPage(method, path string, data any, page *domain.Pagination) *API {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.routes[key(method, path)] = response{data: data, page: page}
	return a
}

// OnPaged answers method and path with one entry of pages per page number,
// chosen by the page query parameter (1 when absent). Pages past the last
// answer with no data.
func (a *API) OnPaged(method, path string, pages ...any) *API {
	a.mu.Lock()
	defer a.mu.Unlock()
	rs := make([]response, len(pages))
	for i, data := range pages {
		rs[i] = response{data: data, page: &domain.Pagination{CurrentPage: i + 1, LastPage: len(pages)}}
	}
	a.paged[key(method, path)] = rs
	return a
}

// Fail answers method and path with err.
func (a *API) Fail(method, path string, err error) *API {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.routes[key(method, path)] = response{err: err}
	return a
}

// Calls returns the recorded requests in order.
func (a *API) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Call(nil), a.calls...)
}

// Called reports whether method and path were requested.
func (a *API) Called(method, path string) bool {
	for _, c := range a.Calls() {
		if c.Method == method && c.Path == path {
			return true
		}
	}
	return false
}

// Do implements domain.APIClient.
func (a *API) Do(_ context.Context, method, path string, query url.Values, body, out any) (*domain.Pagination, error) {
	a.mu.Lock()
	a.calls = append(a.calls, Call{Method: method, Path: path, Query: query, Body: body})
	resp, ok := a.routes[key(method, path)]
	if pages, paged := a.paged[key(method, path)]; paged {
		resp, ok = pageOf(pages, query), true
	}
	a.mu.Unlock()
	return a.answer(method, path, resp, ok, out)
}

// Upload implements domain.APIClient.
func (a *API) Upload(_ context.Context, path, field, filename string, r io.Reader, fields map[string]string, out any) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.calls = append(a.calls, Call{
		Method:   http.MethodPost,
		Path:     path,
		Field:    field,
		Filename: filename,
		File:     string(b),
		Fields:   fields,
	})
	resp, ok := a.routes[key(http.MethodPost, path)]
	a.mu.Unlock()
	_, err = a.answer(http.MethodPost, path, resp, ok, out)
	return err
}

func pageOf(pages []response, query url.Values) response {
	n, err := strconv.Atoi(query.Get("page"))
	if err != nil || n < 1 {
		n = 1
	}
	if n > len(pages) {
		return response{page: &domain.Pagination{CurrentPage: n, LastPage: len(pages)}}
	}
	return pages[n-1]
}

func (a *API) answer(method, path string, resp response, ok bool, out any) (*domain.Pagination, error) {
	if !ok {
		return nil, &api.Error{Method: method, Path: path, Status: http.StatusNotFound, Message: "no route"}
	}
	if resp.err != nil {
		return nil, resp.err
	}
	if out != nil && resp.data != nil {
		b, err := json.Marshal(resp.data)
		if err != nil {
			return nil, fmt.Errorf("servicetest: encode %s %s: %w", method, path, err)
		}
		if err := json.Unmarshal(b, out); err != nil {
			return nil, fmt.Errorf("servicetest: decode %s %s: %w", method, path, err)
		}
	}
	return resp.page, nil
}

var _ domain.APIClient = (*API)(nil)
