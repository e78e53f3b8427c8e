package types

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ID identifies an API resource. The API mixes numeric and UUID keys, so
// both JSON numbers and strings are accepted.
type ID string

// String returns the string form of the identifier.
func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	*id = ID(b)
	return nil
}

// TenantSlug identifies a business on the platform.
type TenantSlug string

// String returns the string form of the slug.
func (s TenantSlug) String() string { return string(s) }

// Role names the audience a user belongs to.
type Role string

const (
	RoleMember     Role = "member"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Pagination is the optional block the API attaches to list responses.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// HasNext reports whether another page follows the current one.
func (p Pagination) HasNext() bool { return p.CurrentPage < p.LastPage }

// ListQuery carries the filter and pagination state of a list screen.
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	Status  string
	From    string
	To      string
	Type    string
}

// Values encodes the non-zero fields as query parameters.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	set := func(k, val string) {
		if val = strings.TrimSpace(val); val != "" {
			v.Set(k, val)
		}
	}
	set("search", q.Search)
	set("status", q.Status)
	set("date_from", q.From)
	set("date_to", q.To)
	set("type", q.Type)
	return v
}
