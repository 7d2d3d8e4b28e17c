package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour)

	token, err := ti.GenerateSessionToken("abc")
	require.NoError(t, err)

	claims, err := ti.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.SessionID)
	assert.Equal(t, time.Hour, ti.TTL())
}

func TestSessionTokenRejectsOtherSecret(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Hour).GenerateSessionToken("abc")
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestSessionTokenRejectsExpired(t *testing.T) {
	ti := NewTokenIssuer("secret", -time.Minute)
	token, err := ti.GenerateSessionToken("abc")
	require.NoError(t, err)

	_, err = ti.ValidateSessionToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestSessionTokenRejectsGarbage(t *testing.T) {
	_, err := NewTokenIssuer("secret", time.Hour).ValidateSessionToken("not.a.token")
	assert.Error(t, err)
}
