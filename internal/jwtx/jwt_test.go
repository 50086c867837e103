package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpavlovs/parkgate/internal/common"
)

func signToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestUserID(t *testing.T) {
	token := signToken(t, jwt.RegisteredClaims{
		Subject:   "cust-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	id, err := UserID(token)
	require.NoError(t, err)
	assert.Equal(t, "cust-42", id)
}

func TestUserID_MissingSubject(t *testing.T) {
	token := signToken(t, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	_, err := UserID(token)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestUserID_Garbage(t *testing.T) {
	_, err := UserID("not.a.jwt")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestIsExpired(t *testing.T) {
	fresh := signToken(t, jwt.RegisteredClaims{
		Subject:   "cust-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	stale := signToken(t, jwt.RegisteredClaims{
		Subject:   "cust-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	noExp := signToken(t, jwt.RegisteredClaims{Subject: "cust-42"})

	assert.False(t, IsExpired(fresh))
	assert.True(t, IsExpired(stale))
	assert.True(t, IsExpired(noExp))
	assert.True(t, IsExpired("garbage"))
}
