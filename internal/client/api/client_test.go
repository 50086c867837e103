package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpavlovs/parkgate/internal/client/session"
)

func newClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	return New(srv.URL, session.NewStore(), nil)
}

func TestCall_AttachesBearerAndContentType(t *testing.T) {
	var gotAuth, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newClient(t, srv)
	c.Session().SetPair("token-1", "refresh-1")

	var out map[string]bool
	require.NoError(t, c.Post(context.Background(), "/api/v1/web/orders/validate", map[string]string{"offerId": "o1"}, &out))

	assert.Equal(t, "Bearer token-1", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.True(t, out["ok"])
}

func TestCall_ExplicitContentTypeWins(t *testing.T) {
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
	}))
	defer srv.Close()

	c := newClient(t, srv)
	_, err := c.Call(context.Background(), "/api/v1/web/files/create", Options{
		Method:  http.MethodPost,
		Body:    []map[string]string{{"contentType": "application/pdf"}},
		Headers: map[string]string{"Content-Type": "application/vnd.custom+json"},
	})
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.custom+json", gotContentType)
}

func TestCall_EmptyBodyYieldsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newClient(t, srv)

	body, err := c.Call(context.Background(), "/api/v1/web/logout", Options{Method: http.MethodPost})
	require.NoError(t, err)
	assert.Nil(t, body)

	var out *struct{ X int }
	require.NoError(t, c.CallJSON(context.Background(), "/api/v1/web/logout", Options{Method: http.MethodPost}, &out))
	assert.Nil(t, out)
}

func TestCall_NoConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close() // nothing listens here anymore

	c := New(addr, session.NewStore(), nil)
	_, err := c.Call(context.Background(), "/api/v1/web/offers", Options{})
	require.ErrorIs(t, err, ErrNoConnection)
	assert.Equal(t, "No internet connection", UserMessage(err))
}

func TestCall_BackendErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "first error of first field wins",
			status:  422,
			body:    `{"errors":{"plate":["Plate is already registered","second"],"email":["bad email"]},"message":"top"}`,
			message: "Plate is already registered",
		},
		{
			name:    "non-array field skipped",
			status:  422,
			body:    `{"errors":{"plate":"oops","email":["bad email"]}}`,
			message: "bad email",
		},
		{
			name:    "message fallback",
			status:  400,
			body:    `{"message":"Offer is no longer available"}`,
			message: "Offer is no longer available",
		},
		{
			name:    "synthesized for 500",
			status:  500,
			body:    `{}`,
			message: "Server error occurred",
		},
		{
			name:    "synthesized for other status",
			status:  404,
			body:    ``,
			message: "Request failed with status 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newClient(t, srv)
			_, err := c.Call(context.Background(), "/api/v1/web/orders/purchase", Options{Method: http.MethodPost})
			require.Error(t, err)

			var be *BackendError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.status, be.Status)
			assert.Equal(t, tt.message, UserMessage(err))
		})
	}
}

func TestCall_RetryAfter401UsesFreshToken(t *testing.T) {
	var mu sync.Mutex
	var authSeen []string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/proxy/api/v1/web/authorization/refresh", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["refreshToken"] != "refresh-old" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"accessToken":  "access-new",
			"refreshToken": "refresh-new",
		})
	})
	mux.HandleFunc("/api/proxy/api/v1/web/accounts/cust-1/statements", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		authSeen = append(authSeen, r.Header.Get("Authorization"))
		mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer access-new" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"st-1"}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newClient(t, srv)
	c.Session().SetPair("access-stale", "refresh-old")

	var out []map[string]string
	require.NoError(t, c.Get(context.Background(), "/api/v1/web/accounts/cust-1/statements", &out))
	require.Len(t, out, 1)
	assert.Equal(t, "st-1", out[0]["id"])

	require.Len(t, authSeen, 2)
	assert.Equal(t, "Bearer access-stale", authSeen[0])
	assert.Equal(t, "Bearer access-new", authSeen[1])

	assert.Equal(t, "access-new", c.Session().AccessToken())
	assert.Equal(t, "refresh-new", c.Session().RefreshToken())
}

func TestCall_RefreshFailureClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/proxy/api/v1/web/authorization/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newClient(t, srv)
	c.Session().SetPair("access-stale", "refresh-stale")

	var bounced bool
	c.OnSessionExpired(func() { bounced = true })

	_, err := c.Call(context.Background(), "/api/v1/web/accounts/cust-1/profile", Options{})
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, bounced)
	assert.Empty(t, c.Session().AccessToken())
	assert.Empty(t, c.Session().RefreshToken())
}

func TestCall_NoRefreshTokenMeansNoRefreshCall(t *testing.T) {
	var refreshCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/api/proxy/api/v1/web/authorization/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newClient(t, srv) // empty session: no refresh token held

	_, err := c.Call(context.Background(), "/api/v1/web/accounts/cust-1/profile", Options{})
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Zero(t, refreshCalls)
}

func TestGetBlob_ReturnsRawBytes(t *testing.T) {
	pdf := []byte("%PDF-1.4 raw bytes \x00\x01")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))
	defer srv.Close()

	c := newClient(t, srv)
	got, err := c.GetBlob(context.Background(), "/api/v1/web/accounts/cust-1/statements/st-1/download")
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

// guards against body replay bugs: the retried request must carry the same
// payload the original did.
func TestCall_RetryReplaysBody(t *testing.T) {
	var bodies [][]byte

	mux := http.NewServeMux()
	mux.HandleFunc("/api/proxy/api/v1/web/authorization/refresh", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "access-new"})
	})
	mux.HandleFunc("/api/proxy/api/v1/web/orders/purchase", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, b)
		if r.Header.Get("Authorization") != "Bearer access-new" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"orderId":"ord-1"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newClient(t, srv)
	c.Session().SetPair("access-stale", "refresh-old")

	var out map[string]string
	require.NoError(t, c.Post(context.Background(), "/api/v1/web/orders/purchase", map[string]string{"offerId": "o1"}, &out))
	assert.Equal(t, "ord-1", out["orderId"])

	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
}
