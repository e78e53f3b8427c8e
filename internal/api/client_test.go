package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"coopdesk/internal/api"
	"coopdesk/internal/domain"
)

type staticToken string

func (s staticToken) Token() (string, error) { return string(s), nil }

type failingToken struct{}

func (failingToken) Token() (string, error) { return "", errors.New("locked") }

func newClient(t *testing.T, srv *httptest.Server, tenant string, tokens domain.TokenSource) *api.Client {
	t.Helper()
	return api.New(api.Options{
		BaseURL: srv.URL + "/",
		Tenant:  tenant,
		HTTP:    srv.Client(),
		Tokens:  tokens,
		Logger:  zaptest.NewLogger(t),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestDo_SetsHeadersAndDecodesData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/member/loans", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "lagos-coop", r.Header.Get("X-Tenant-Slug"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Empty(t, r.Header.Get("Content-Type"))

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": 7, "principal": "150000.50", "interest_rate": 12, "status": "active"},
			},
			"pagination": map[string]int{"current_page": 2, "per_page": 10, "total": 11, "last_page": 2},
		})
	}))
	defer srv.Close()

	c := newClient(t, srv, "lagos-coop", staticToken("tok-123"))
	var loans []domain.Loan
	page, err := c.Do(context.Background(), http.MethodGet, "/api/member/loans",
		domain.ListQuery{Page: 2}.Values(), nil, &loans)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, domain.ID("7"), loans[0].ID)
	assert.InDelta(t, 150000.50, loans[0].Principal.Float(), 1e-9)
	require.NotNil(t, page)
	assert.Equal(t, 11, page.Total)
	assert.False(t, page.HasNext())
}

func TestDo_EncodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body domain.RejectRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "incomplete KYC", body.Reason)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Rejected"})
	}))
	defer srv.Close()

	c := newClient(t, srv, "", nil)
	_, err := c.Do(context.Background(), http.MethodPost, "api/admin/members/3/reject", nil,
		domain.RejectRequest{Reason: "incomplete KYC"}, nil)
	require.NoError(t, err)
}

func TestDo_OmitsTenantAndTokenWhenUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasTenant := r.Header["X-Tenant-Slug"]
		assert.False(t, hasTenant)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	_, err := newClient(t, srv, "  ", staticToken("")).Do(context.Background(), http.MethodGet, "/ping", nil, nil, nil)
	require.NoError(t, err)
}

func TestDo_NonSuccessStatusBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"message": "The given data was invalid.",
			"errors": map[string][]string{
				"email":  {"The email has already been taken."},
				"amount": {"The amount must be at least 1."},
			},
		})
	}))
	defer srv.Close()

	_, err := newClient(t, srv, "", nil).Do(context.Background(), http.MethodPost, "/api/x", nil, map[string]int{"a": 1}, nil)
	require.Error(t, err)

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, []string{
		"amount: The amount must be at least 1.",
		"email: The email has already been taken.",
	}, apiErr.FieldErrors())
	assert.Equal(t,
		"The given data was invalid. (amount: The amount must be at least 1.; email: The email has already been taken.)",
		api.UserMessage(err))
}

func TestDo_StatusSentinels(t *testing.T) {
	cases := []struct {
		status int
		target error
	}{
		{http.StatusUnauthorized, api.ErrUnauthorized},
		{419, api.ErrUnauthorized},
		{http.StatusForbidden, api.ErrForbidden},
		{http.StatusNotFound, api.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, "<html>nope</html>")
			}))
			defer srv.Close()

			_, err := newClient(t, srv, "", nil).Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
			assert.ErrorIs(t, err, tc.target)
		})
	}
}

func TestDo_SuccessFalseIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Insufficient wallet balance"})
	}))
	defer srv.Close()

	_, err := newClient(t, srv, "", nil).Do(context.Background(), http.MethodPost, "/pay", nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, "Insufficient wallet balance", api.UserMessage(err))
}

func TestDo_EmptyBodyIsFine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var out domain.Member
	page, err := newClient(t, srv, "", nil).Do(context.Background(), http.MethodDelete, "/m/1", nil, nil, &out)
	require.NoError(t, err)
	assert.Nil(t, page)
}

func TestDo_TokenSourceErrorStopsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := newClient(t, srv, "", failingToken{}).Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
	assert.False(t, called)
}

func TestAnonymous_DropsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "acme", r.Header.Get("X-Tenant-Slug"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	c := newClient(t, srv, "acme", failingToken{}).Anonymous()
	_, err := c.Do(context.Background(), http.MethodPost, "/api/auth/login", nil, domain.Credentials{Email: "a@b.c"}, nil)
	require.NoError(t, err)
}

func TestUserMessage_Fallbacks(t *testing.T) {
	assert.Equal(t, "", api.UserMessage(nil))
	assert.Equal(t, api.GenericMessage, api.UserMessage(errors.New("dial tcp: refused")))
	assert.Equal(t, "Your session has expired. Please log in again.",
		api.UserMessage(&api.Error{Status: http.StatusUnauthorized}))
	assert.Equal(t, api.GenericMessage, api.UserMessage(&api.Error{Status: http.StatusInternalServerError}))
}

func TestUpload_StreamsRawFile(t *testing.T) {
	const csv = "member_id,amount,type,date\r\nM001,\"1,000\",monthly,2024-01-31\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/bulk-upload/contributions", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "contributions", r.FormValue("type"))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "jan.csv", hdr.Filename)
		assert.Equal(t, "text/csv", hdr.Header.Get("Content-Type"))
		got, _ := io.ReadAll(f)
		assert.Equal(t, csv, string(got))

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"processed": 1, "failed": 0},
		})
	}))
	defer srv.Close()

	var res domain.BulkUploadResult
	err := newClient(t, srv, "", staticToken("t")).Upload(context.Background(),
		"/api/admin/bulk-upload/contributions", "file", "/tmp/uploads/jan.csv",
		strings.NewReader(csv), map[string]string{"type": "contributions"}, &res)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
}

func TestUpload_TokenErrorReleasesWriter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	err := newClient(t, srv, "", failingToken{}).Upload(context.Background(), "/u", "file", "a.csv",
		strings.NewReader(strings.Repeat("x", 1<<16)), nil, nil)
	require.Error(t, err)
}
