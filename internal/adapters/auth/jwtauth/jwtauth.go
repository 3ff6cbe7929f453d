package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"epaw/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrNotConfigured  = errors.New("jwt secret not configured")
	ErrMissingSubject = errors.New("token claims missing user id")
)

const DefaultTTL = 7 * 24 * time.Hour

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`

	// Tokens del API real traen el usuario en "id" o "userId" en vez de "sub".
	LegacyID string `json:"id,omitempty"`
	UserID   string `json:"userId,omitempty"`

	jwt.RegisteredClaims
}

// Signer emite y verifica tokens HS256 (lo usa el sandbox).
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var (
	_ auth.AuthVerifier = (*Signer)(nil)
	_ auth.TokenIssuer  = (*Signer)(nil)
)

func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Signer) Issue(c auth.Claims) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(c.UserID) == "" {
		return "", ErrMissingSubject
	}

	now := s.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email: c.Email,
		Role:  c.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return tok.SignedString(s.secret)
}

func (s *Signer) Verify(_ context.Context, token string) (auth.Claims, error) {
	if s == nil || len(s.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var tc tokenClaims
	_, err := jwt.ParseWithClaims(token, &tc, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}
	return toClaims(tc)
}

// Peek lee los claims sin verificar firma. El cliente lo usa solo para
// mostrar quién está logueado; la validez la decide el server.
func Peek(token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return auth.Claims{}, fmt.Errorf("jwt peek failed: %w", err)
	}
	return toClaims(tc)
}

func toClaims(tc tokenClaims) (auth.Claims, error) {
	uid := strings.TrimSpace(tc.Subject)
	if uid == "" {
		uid = strings.TrimSpace(tc.LegacyID)
	}
	if uid == "" {
		uid = strings.TrimSpace(tc.UserID)
	}
	if uid == "" {
		return auth.Claims{}, ErrMissingSubject
	}
	return auth.Claims{
		UserID: uid,
		Email:  tc.Email,
		Role:   tc.Role,
	}, nil
}
