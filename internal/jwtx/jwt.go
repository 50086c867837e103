// Package jwtx extracts claims from access tokens on the client side.
//
// The backend owns the signing secret, so tokens are decoded without
// signature verification: the client only needs the subject (the customer
// id embedded by the backend) and the expiry for staleness checks. Anything
// security-relevant is re-verified server-side on every call.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mpavlovs/parkgate/internal/common"
)

func decodeClaims(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// UserID returns the subject ("sub") claim of the token, which the backend
// sets to the customer account id. An absent subject is an invalid token.
func UserID(token string) (string, error) {
	claims, err := decodeClaims(token)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}

// IsExpired reports whether the token's "exp" claim is in the past.
// Tokens without an expiry claim, or that cannot be decoded at all,
// are treated as expired.
func IsExpired(token string) bool {
	claims, err := decodeClaims(token)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Before(time.Now())
}
