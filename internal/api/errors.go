package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// GenericMessage is shown when the server gives nothing more specific.
const GenericMessage = "Something went wrong. Please try again."

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// Error is a failed API call.
type Error struct {
	Method    string
	Path      string
	Status    int
	Message   string
	Errors    map[string][]string
	RequestID string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api %s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

// Is maps HTTP statuses onto the package sentinels. 419 is the session
// expiry status some backends use in place of 401.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == 419
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// FieldErrors flattens validation errors as "field: message" lines sorted
// by field name.
func (e *Error) FieldErrors() []string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var out []string
	for _, f := range fields {
		for _, m := range e.Errors[f] {
			out = append(out, f+": "+m)
		}
	}
	return out
}

// UserMessage turns err into a single line fit for display.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			if fe := apiErr.FieldErrors(); len(fe) > 0 {
				return apiErr.Message + " (" + strings.Join(fe, "; ") + ")"
			}
			return apiErr.Message
		}
		if errors.Is(apiErr, ErrUnauthorized) {
			return "Your session has expired. Please log in again."
		}
	}
	return GenericMessage
}
