package api

import (
	"github.com/goccy/go-json"

	"coopdesk/internal/domain"
)

// envelope is the response wrapper every endpoint returns. Success is a
// pointer so a body without the field is not read as a failure.
type envelope struct {
	Success    *bool               `json:"success"`
	Message    string              `json:"message"`
	Data       json.RawMessage     `json:"data"`
	Pagination *domain.Pagination  `json:"pagination"`
	Errors     map[string][]string `json:"errors"`
}

func (e envelope) failed() bool { return e.Success != nil && !*e.Success }

func (e envelope) hasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}
