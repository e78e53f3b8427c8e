package interfaces

import (
	"context"
	"io"
	"net/url"

	domaintypes "coopdesk/internal/domain/types"
)

// APIClient is how we talk to the cooperative REST API, all with context.
type APIClient interface {
	// Do performs a JSON request and decodes the envelope's data into out.
	Do(
		ctx context.Context,
		method, path string,
		query url.Values,
		body, out any,
	) (*domaintypes.Pagination, error)

	// Upload sends r unchanged as a multipart/form-data file part.
	Upload(
		ctx context.Context,
		path, field, filename string,
		r io.Reader,
		fields map[string]string,
		out any,
	) error
}

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Token() (string, error)
}
