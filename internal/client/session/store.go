// Package session holds the client's credential slot: one access/refresh
// token pair scoped to the running client instance.
//
// The store is deliberately an injectable value rather than package-level
// state, so every test (and every embedded client) can own an isolated
// session. A refresh replaces both tokens under one lock, so readers never
// observe a pair that mixes an old refresh token with a new access token.
package session

import "sync"

// Store is a concurrency-safe holder for the current token pair.
// The zero value is empty and ready to use.
type Store struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func NewStore() *Store {
	return &Store{}
}

// AccessToken returns the current access token, or "" when logged out.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token, or "" when logged out.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// SetPair atomically replaces both tokens. An empty refreshToken keeps the
// previous one (the backend is allowed to skip refresh-token rotation).
func (s *Store) SetPair(accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	if refreshToken != "" {
		s.refreshToken = refreshToken
	}
}

// Clear drops both tokens. Used on logout and on unrecoverable 401.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = ""
}
