package jwtauth

import (
	"context"
	"testing"
	"time"

	"epaw/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_IssueVerify(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	tok, err := s.Issue(auth.Claims{UserID: "u1", Email: "a@b.com", Role: "veterinary"})
	require.NoError(t, err)

	c, err := s.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "u1", Email: "a@b.com", Role: "veterinary"}, c)
}

func TestSigner_RejectsExpiredAndForeignTokens(t *testing.T) {
	s := NewSigner("secret", time.Minute)
	base := time.Date(2025, 11, 7, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	tok, err := s.Issue(auth.Claims{UserID: "u1"})
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = s.Verify(context.Background(), tok)
	assert.Error(t, err)

	other := NewSigner("other", time.Hour)
	foreign, err := other.Issue(auth.Claims{UserID: "u1"})
	require.NoError(t, err)
	_, err = NewSigner("secret", time.Hour).Verify(context.Background(), foreign)
	assert.Error(t, err)
}

func TestSigner_NotConfigured(t *testing.T) {
	s := NewSigner("", 0)
	_, err := s.Issue(auth.Claims{UserID: "u1"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewSigner("x", 0).Verify(context.Background(), " ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}

func TestPeek_ReadsIDClaimFromUpstreamTokens(t *testing.T) {
	// Forma del token del API real: {id, role} sin "sub".
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "65a1b2c3d4e5f60718293a4b",
		"role": "organization",
	}).SignedString([]byte("unknown-to-client"))
	require.NoError(t, err)

	c, err := Peek(raw)
	require.NoError(t, err)
	assert.Equal(t, "65a1b2c3d4e5f60718293a4b", c.UserID)
	assert.Equal(t, "organization", c.Role)

	_, err = Peek("not-a-jwt")
	assert.Error(t, err)
}
