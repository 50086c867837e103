// Package proxy implements the gateway's forwarding proxy: a catch-all
// route that relays client requests to the parking backend with a header
// allowlist and content-type-based response framing, so browser-side code
// only ever talks to the gateway's own origin.
package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mpavlovs/parkgate/internal/common"
	"github.com/mpavlovs/parkgate/internal/logging"
)

// forwardedHeaders is the allowlist of inbound headers relayed upstream.
var forwardedHeaders = []string{"Authorization", "Content-Type", "Cookie"}

// bodyMethods are the methods whose request body is forwarded.
var bodyMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPut:   true,
	http.MethodPatch: true,
}

// Handler relays requests under the proxy base path to the backend API.
type Handler struct {
	backendURL string
	http       *http.Client
	log        logging.Logger
}

// NewHandler builds a proxy handler forwarding to backendURL. An empty
// backendURL is tolerated at startup; proxied calls then fail per request.
func NewHandler(backendURL string, log logging.Logger) *Handler {
	return &Handler{
		backendURL: strings.TrimSuffix(backendURL, "/"),
		http:       &http.Client{},
		log:        log,
	}
}

// Register mounts the catch-all proxy route on r.
func (h *Handler) Register(r *gin.Engine) {
	r.Any(common.ProxyBasePath+"/*path", h.Handle)
}

// Handle forwards one request and frames the backend's response.
func (h *Handler) Handle(c *gin.Context) {
	ctx := c.Request.Context()
	method := c.Request.Method

	target := h.backendURL + c.Param("path")
	if q := c.Request.URL.RawQuery; q != "" {
		target += "?" + q
	}

	var body io.Reader
	if bodyMethods[method] {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			h.fail(c, http.StatusInternalServerError, err)
			return
		}
		// a JSON body that does not parse (or an empty POST body) is
		// treated as absent rather than forwarded broken
		if strings.Contains(c.ContentType(), "application/json") && !json.Valid(data) {
			data = nil
		}
		if len(data) > 0 {
			body = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	for _, name := range forwardedHeaders {
		if v := c.GetHeader(name); v != "" {
			req.Header.Set(name, v)
		}
	}

	resp, err := h.http.Do(req)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	// relay every set-cookie value before writing the body
	for _, cookie := range resp.Header.Values("Set-Cookie") {
		c.Writer.Header().Add("Set-Cookie", cookie)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}

	h.log.Debug(ctx, "proxied request",
		"method", method, "path", c.Param("path"), "status", resp.StatusCode, "content_type", contentType)

	switch {
	case isBinary(contentType):
		c.Data(resp.StatusCode, contentType, data)
	case strings.Contains(contentType, "application/json"):
		h.writeJSON(c, resp.StatusCode, data)
	default:
		c.Data(resp.StatusCode, contentType, data)
	}
}

// writeJSON frames a JSON upstream response: empty bodies and unparsable
// bodies are normalized so the client always receives valid JSON.
func (h *Handler) writeJSON(c *gin.Context, status int, data []byte) {
	success := status >= 200 && status < 300

	if len(bytes.TrimSpace(data)) == 0 {
		if success {
			c.JSON(status, gin.H{"success": true})
			return
		}
		msg := fmt.Sprintf("Request failed with status %d", status)
		c.JSON(status, gin.H{"message": msg, "error": msg})
		return
	}

	var parsed json.RawMessage
	if err := json.Unmarshal(data, &parsed); err != nil {
		h.log.Error(c.Request.Context(), "JSON parse error in proxy", "error", err)
		if success {
			c.Data(status, "application/json", []byte("null"))
			return
		}
		raw := string(data)
		if raw == "" {
			raw = "(empty)"
		}
		c.JSON(status, gin.H{
			"message":     err.Error(),
			"error":       err.Error(),
			"rawResponse": raw,
		})
		return
	}

	c.Data(status, "application/json", data)
}

// fail reports a proxy-internal exception as a JSON error body.
func (h *Handler) fail(c *gin.Context, status int, err error) {
	h.log.Error(c.Request.Context(), "proxy error", "error", err)
	c.JSON(status, gin.H{
		"message": err.Error(),
		"error":   err.Error(),
	})
}

func isBinary(contentType string) bool {
	return strings.Contains(contentType, "application/pdf") ||
		strings.Contains(contentType, "application/octet-stream") ||
		strings.Contains(contentType, "image/") ||
		strings.Contains(contentType, "video/") ||
		strings.Contains(contentType, "audio/")
}
