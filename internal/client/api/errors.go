package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNoConnection means the request produced no HTTP response at all
	// (DNS failure, refused connection, dropped link).
	ErrNoConnection = errors.New("no connection")

	// ErrSessionExpired means a 401 could not be recovered by a token
	// refresh. The session has been cleared; the caller should send the
	// user back to the entry screen.
	ErrSessionExpired = errors.New("session expired")
)

// BackendError is a non-2xx response from the parking backend. Message holds
// the first human-readable message found in the error payload, or "" when
// the payload carried none.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (status %d)", e.Status)
}

// UserMessage renders any error returned by this package as the text shown
// to the customer. UI code displays the result as-is; multi-field backend
// validation errors are flattened to the first message found.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoConnection) {
		return "No internet connection"
	}
	if errors.Is(err, ErrSessionExpired) {
		return "Your session has expired"
	}
	var be *BackendError
	if errors.As(err, &be) {
		if be.Message != "" {
			return be.Message
		}
		if be.Status == 500 {
			return "Server error occurred"
		}
		if be.Status != 0 {
			return fmt.Sprintf("Request failed with status %d", be.Status)
		}
	}
	return "An unexpected error occurred"
}

// extractErrorMessage pulls a display message out of a backend error body.
//
// The backend's envelope is loosely typed: an optional "errors" object
// mapping field names to arrays of messages, and an optional top-level
// "message". Fields are scanned in document order and only the first string
// found wins; remaining field errors are dropped.
func extractErrorMessage(body []byte) string {
	var env struct {
		Errors  json.RawMessage `json:"errors"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if msg := firstFieldError(env.Errors); msg != "" {
		return msg
	}
	return env.Message
}

func firstFieldError(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return ""
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil { // field name
			return ""
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return ""
		}
		// values that are not arrays of strings are skipped
		var msgs []any
		if err := json.Unmarshal(val, &msgs); err != nil || len(msgs) == 0 {
			continue
		}
		if s, ok := msgs[0].(string); ok {
			return s
		}
	}
	return ""
}
