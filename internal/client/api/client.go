package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/mpavlovs/parkgate/internal/client/session"
	"github.com/mpavlovs/parkgate/internal/common"
	"github.com/mpavlovs/parkgate/internal/logging"
)

// Options is the per-call options bag for Client.Call.
type Options struct {
	Method  string
	Body    any // marshalled as JSON when non-nil
	Headers map[string]string
}

// Client is the single entry point for application-to-backend calls.
//
// Every request goes through the gateway's same-origin proxy base path. The
// client attaches the bearer token from the session store, recovers from one
// expired-access-token 401 by refreshing and replaying the original request,
// and maps failures to the closed error set of this package (ErrNoConnection,
// ErrSessionExpired, *BackendError).
type Client struct {
	baseURL string // gateway origin, e.g. "http://localhost:8080"
	http    *http.Client
	session *session.Store
	log     logging.Logger

	// onSessionExpired runs after an unrecoverable 401 has cleared the
	// session; the interactive client uses it to bounce the user back to
	// the entry screen.
	onSessionExpired func()

	refresh singleflight.Group
}

func New(baseURL string, sess *session.Store, log logging.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		session: sess,
		log:     log,
	}
}

// OnSessionExpired registers a hook invoked when a 401 could not be
// recovered. Must be set before the client is shared between goroutines.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// Session exposes the credential store the client reads tokens from.
func (c *Client) Session() *session.Store {
	return c.session
}

// Call performs one request against the backend through the gateway proxy.
//
// endpoint is relative to the proxy base (e.g. "/api/v1/web/offers?type=all").
// The returned bytes are the response body; a 2xx response with an empty
// body yields nil, not an error.
func (c *Client) Call(ctx context.Context, endpoint string, opts Options) ([]byte, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var payload []byte
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, err
		}
		payload = b
	}

	status, body, err := c.send(ctx, method, endpoint, payload, opts.Headers, c.session.AccessToken())
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		return c.recoverUnauthorized(ctx, method, endpoint, payload, opts.Headers)
	}

	if status < 200 || status > 299 {
		return nil, &BackendError{Status: status, Message: extractErrorMessage(body)}
	}

	if len(body) == 0 {
		return nil, nil
	}
	return body, nil
}

// CallJSON is Call plus decoding of the response body into out. A nil out or
// an empty body skips decoding, so endpoints that answer 200-with-no-content
// behave like a nil result instead of a decode error.
func (c *Client) CallJSON(ctx context.Context, endpoint string, opts Options, out any) error {
	body, err := c.Call(ctx, endpoint, opts)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.CallJSON(ctx, endpoint, Options{Method: http.MethodGet}, out)
}

// GetBlob fetches a binary payload (statement PDFs, transaction exports).
func (c *Client) GetBlob(ctx context.Context, endpoint string) ([]byte, error) {
	return c.Call(ctx, endpoint, Options{Method: http.MethodGet})
}

func (c *Client) Post(ctx context.Context, endpoint string, body any, out any) error {
	return c.CallJSON(ctx, endpoint, Options{Method: http.MethodPost, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any, out any) error {
	return c.CallJSON(ctx, endpoint, Options{Method: http.MethodPut, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body any, out any) error {
	return c.CallJSON(ctx, endpoint, Options{Method: http.MethodPatch, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.CallJSON(ctx, endpoint, Options{Method: http.MethodDelete}, out)
}

// send issues one HTTP request and reads the whole body. A transport error
// with no response at all maps to ErrNoConnection.
func (c *Client) send(ctx context.Context, method, endpoint string, payload []byte, headers map[string]string, accessToken string) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+common.ProxyBasePath+endpoint, reader)
	if err != nil {
		return 0, nil, err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if accessToken != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, ErrNoConnection
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, ErrNoConnection
	}
	return resp.StatusCode, body, nil
}

// recoverUnauthorized runs the single-flight refresh and, if it produced a
// new access token, replays the original request exactly once with the fresh
// bearer. A second 401 on the replay is not refreshed again.
func (c *Client) recoverUnauthorized(ctx context.Context, method, endpoint string, payload []byte, headers map[string]string) ([]byte, error) {
	token := c.refreshSession(ctx)
	if token == "" {
		c.session.Clear()
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return nil, ErrSessionExpired
	}

	status, body, err := c.send(ctx, method, endpoint, payload, headers, token)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &BackendError{Status: status, Message: extractErrorMessage(body)}
	}
	if len(body) == 0 {
		return nil, nil
	}
	return body, nil
}
