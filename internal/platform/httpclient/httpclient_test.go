package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"epaw/internal/platform/logger"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Read() (string, bool) { return s.token, s.token != "" }

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := NewWithBaseURL(ts.URL, time.Second)
	require.NoError(t, err)
	c.newRequestID = func() string { return "req-1" }
	return c
}

func TestDoJSON_SetsHeadersAndBearer(t *testing.T) {
	var got http.Header
	var body []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		body, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	c.WithTokens(staticTokens{token: "abc"})

	var out map[string]any
	err := c.Send(context.Background(), http.MethodPost, "/api/reports", map[string]string{"a": "b"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "Bearer abc", got.Get("Authorization"))
	assert.Equal(t, "req-1", got.Get("X-Request-ID"))
	assert.JSONEq(t, `{"a":"b"}`, string(body))
	assert.Equal(t, true, out["ok"])
}

func TestDoJSON_NoTokenNoAuthorization(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})
	c.WithTokens(staticTokens{})

	require.NoError(t, c.Send(context.Background(), http.MethodGet, "/api/organizations", nil, nil))
	assert.Empty(t, auth)
}

func TestDoJSON_StatusErrorCarriesCodeAndMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Token inválido"}`))
	})

	err := c.Send(context.Background(), http.MethodGet, "/api/auth/me", nil, &map[string]any{})
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "Token inválido", se.Message)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Token inválido", Describe(err))
}

func TestDoJSON_NotFoundIsStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	err := c.Send(context.Background(), http.MethodGet, "/api/reports/x", nil, nil)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDoJSON_DecodeErrorOnGarbage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": tru`))
	})

	var out map[string]any
	err := c.Send(context.Background(), http.MethodGet, "/api/reports", nil, &out)
	var de *DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestDoJSON_EmptyBodyIsNoData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var out map[string]any
	err := c.Send(context.Background(), http.MethodGet, "/api/reports", nil, &out)
	assert.ErrorIs(t, err, ErrNoData)

	// sin out no importa el body
	assert.NoError(t, c.Send(context.Background(), http.MethodGet, "/api/reports", nil, nil))
}

func TestDoJSON_UnreachableServerIsNetworkError(t *testing.T) {
	c, err := NewWithBaseURL("http://epaw.invalid", 500*time.Millisecond)
	require.NoError(t, err)

	var out map[string]any
	err = c.Send(context.Background(), http.MethodGet, "/api/reports", nil, &out)
	var ne *NetworkError
	require.True(t, errors.As(err, &ne), "got %T: %v", err, err)

	var de *DecodeError
	assert.False(t, errors.As(err, &de))
}

func TestDoJSON_InvalidURL(t *testing.T) {
	_, err := NewWithBaseURL("not a url", time.Second)
	assert.ErrorIs(t, err, ErrInvalidURL)

	c := New(time.Second)
	err = c.Send(context.Background(), http.MethodGet, "/api/reports", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.Equal(t, "La URL es inválida", Describe(err))

	err = c.Send(context.Background(), http.MethodGet, "  ", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestDescribe_LocalErrorsAreSpanish(t *testing.T) {
	assert.Equal(t, "Faltan datos requeridos o son inválidos", Describe(fmt.Errorf("login: %w", ErrInvalidInput)))
	assert.Equal(t, "Operación cancelada", Describe(context.Canceled))

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Send(ctx, http.MethodGet, "/api/reports", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "Operación cancelada", Describe(err))
}

func TestDoJSON_CamelizesResponseKeys(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"1","created_at":"x","location_address":"Av","nested":[{"photo_urls":["a"]}]}`))
	})

	var out struct {
		ID        string `json:"_id"`
		CreatedAt string `json:"createdAt"`
		Address   string `json:"locationAddress"`
		Nested    []struct {
			PhotoURLs []string `json:"photoUrls"`
		} `json:"nested"`
	}
	require.NoError(t, c.Send(context.Background(), http.MethodGet, "/x", nil, &out))
	assert.Equal(t, "1", out.ID)
	assert.Equal(t, "x", out.CreatedAt)
	assert.Equal(t, "Av", out.Address)
	require.Len(t, out.Nested, 1)
	assert.Equal(t, []string{"a"}, out.Nested[0].PhotoURLs)
}

func TestDoJSON_LogsRequestsWithoutToken(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	c.WithLogger(logger.FromZap(zap.New(core))).WithTokens(staticTokens{token: "secret"})

	require.NoError(t, c.Send(context.Background(), http.MethodGet, "/api/animals", nil, nil))

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "/api/animals", ctx["path"])
	assert.EqualValues(t, 200, ctx["status"])
	for _, v := range ctx {
		assert.NotEqual(t, "secret", v)
	}
}

func TestWithQuery_SkipsEmpty(t *testing.T) {
	q := map[string][]string{"page": {"2"}, "status": {""}, "limit": {"20"}}
	assert.Equal(t, "/api/reports?limit=20&page=2", WithQuery("/api/reports", q))
	assert.Equal(t, "/api/reports", WithQuery("/api/reports", nil))
}

func TestCamelKey(t *testing.T) {
	tests := map[string]string{
		"_id":              "_id",
		"created_at":       "createdAt",
		"photo_urls":       "photoUrls",
		"already":          "already",
		"__v":              "__v",
		"a__b":             "aB",
		"trailing_":        "trailing_",
		"in_veterinary_at": "inVeterinaryAt",
	}
	for in, want := range tests {
		assert.Equal(t, want, camelKey(in), "key %q", in)
	}
}

// Cualquier status fuera de [200,299] termina en StatusError con el código exacto.
func TestProperty_NonSuccessStatusIsServerError(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("non-2xx carries exact status", prop.ForAll(
		func(code int) bool {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
				_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
			}))
			defer ts.Close()

			c, err := NewWithBaseURL(ts.URL, time.Second)
			if err != nil {
				return false
			}
			var out map[string]any
			err = c.Send(context.Background(), http.MethodGet, "/api/reports", nil, &out)
			return StatusCode(err) == code
		},
		gen.OneGenOf(gen.IntRange(400, 451), gen.IntRange(500, 511)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
