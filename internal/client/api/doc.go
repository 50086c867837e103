// Package api contains client-side building blocks for talking to the
// parking backend through the gateway proxy.
//
// # Overview
//
// The package provides:
//  1. A REST wrapper (Client) that dispatches every call through the
//     same-origin proxy base path, injects the bearer token from the
//     session store, and normalizes response handling (empty 2xx bodies
//     become nil results, binary payloads pass through untouched).
//  2. Transparent recovery from an expired access token: the first 401
//     triggers a single-flight refresh-token exchange, and the original
//     request is replayed exactly once with the fresh bearer.
//  3. A closed error set callers can match with errors.Is/errors.As:
//     ErrNoConnection, ErrSessionExpired, *BackendError. UserMessage
//     renders any of them as display text.
//
// # Error Handling
//
// Backend error payloads are flattened: the first string found in the
// "errors" field map wins, falling back to the top-level "message". Refresh
// failures never surface as errors; they resolve to "no new token" and the
// session is cleared.
//
// # Concurrency & Contexts
//
// Client is safe for concurrent use once constructed. All operations accept
// context.Context; the shared refresh exchange detaches from the triggering
// caller's context so one impatient caller cannot fail the refresh for
// everyone else.
package api
