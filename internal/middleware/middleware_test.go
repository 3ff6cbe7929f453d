package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"epaw/internal/platform/logger"
	"epaw/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeVerifier map[string]auth.Claims

func (f fakeVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	c, ok := f[token]
	if !ok {
		return auth.Claims{}, errors.New("bad token")
	}
	return c, nil
}

func claimsEcho(got *auth.Claims, ok *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *ok = GetClaims(r.Context())
	})
}

func TestAuthContext_Bearer(t *testing.T) {
	v := fakeVerifier{"good": {UserID: "u1", Role: "organization"}}

	cases := []struct {
		header string
		wantOK bool
	}{
		{"Bearer good", true},
		{"bearer good", true},
		{"Bearer bad", false},
		{"Basic good", false},
		{"", false},
	}
	for _, tc := range cases {
		var got auth.Claims
		var ok bool
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		AuthContext(v)(claimsEcho(&got, &ok)).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, tc.wantOK, ok, tc.header)
		if tc.wantOK {
			assert.Equal(t, "u1", got.UserID)
		}
	}
}

func TestAuthContext_DevHeaders(t *testing.T) {
	var got auth.Claims
	var ok bool
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", "vet-1")
	req.Header.Set("X-Debug-Role", "veterinary")

	AuthContext(nil)(claimsEcho(&got, &ok)).ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, ok)
	assert.Equal(t, auth.Claims{UserID: "vet-1", Role: "veterinary"}, got)
}

func TestRecover_WritesEnvelope(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := Recover(logger.FromZap(zap.New(core)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, internalErrorBody, rec.Body.String())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "boom", logs.All()[0].ContextMap()["panic"])
}

func TestRequestLog_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := logger.FromZap(zap.New(core))

	h := chimw.RequestID(RequestLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.EqualValues(t, 404, entries[1].ContextMap()["status"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}
