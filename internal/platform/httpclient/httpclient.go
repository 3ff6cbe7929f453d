package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"epaw/internal/platform/logger"

	"github.com/google/uuid"
)

const (
	DefaultTimeout = 30 * time.Second
	DefaultBaseURL = "https://epaws-api.onrender.com"

	maxBody = 4 << 20
)

// TokenSource entrega el bearer token vigente (si hay sesión).
// Lo cumple cualquier session.Store.
type TokenSource interface {
	Read() (string, bool)
}

// Doer es lo que consumen los services de recursos.
type Doer interface {
	DoJSON(ctx context.Context, method, pathOrURL string, headers map[string]string, in, out any) error
}

var _ Doer = (*Client)(nil)

// Client envuelve *http.Client con lo que necesita cada llamada a la API de ePaw.
type Client struct {
	HTTP    *http.Client
	BaseURL string // opcional; si se define, DoJSON puede recibir paths relativos

	// Tokens se lee en cada request; nil = sin auth.
	Tokens TokenSource

	// CamelizeKeys convierte snake_case -> camelCase en las keys de la respuesta.
	CamelizeKeys bool

	Log logger.Logger

	newRequestID func() string
}

// New crea un Client con timeout razonable.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP: &http.Client{
			Timeout: timeout,
		},
		CamelizeKeys: true,
		Log:          logger.NewNop(),
		newRequestID: uuid.NewString,
	}
}

// NewWithBaseURL crea un Client con BaseURL + timeout.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	if strings.TrimSpace(baseURL) == "" {
		return c, nil
	}
	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *Client {
	c := New(timeout)
	if tr == nil {
		tr = http.DefaultTransport
	}
	c.HTTP.Transport = tr
	return c
}

// WithTokens devuelve el mismo client con la fuente de token seteada.
func (c *Client) WithTokens(ts TokenSource) *Client {
	c.Tokens = ts
	return c
}

// WithLogger setea el logger del transporte.
func (c *Client) WithLogger(l logger.Logger) *Client {
	if l != nil {
		c.Log = l.With(map[string]any{"component": "httpclient"})
	}
	return c
}

// Send es el contrato corto: path relativo, método y body opcional.
func (c *Client) Send(ctx context.Context, method, path string, in, out any) error {
	return c.DoJSON(ctx, method, path, nil, in, out)
}

// DoJSON hace un request JSON.
// - method: GET/POST/etc
// - pathOrURL: puede ser URL absoluta o path relativo si BaseURL está seteado
// - headers: headers extra (opcional)
// - in: body a enviar (opcional). Si nil => no body.
// - out: donde decodificar JSON (opcional). Si nil => ignora body.
// Un request por llamada, sin reintentos.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	if c == nil || c.HTTP == nil {
		return &MessageError{Message: "httpclient: nil client"}
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &MessageError{Message: "httpclient: marshal json: " + err.Error(), Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	// Defaults
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	reqID := c.requestID()
	req.Header.Set("X-Request-ID", reqID)
	if c.Tokens != nil {
		if tok, ok := c.Tokens.Read(); ok && strings.TrimSpace(tok) != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	// Extra headers
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	log := c.logger().With(map[string]any{
		"method":     method,
		"path":       req.URL.Path,
		"request_id": reqID,
	})

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Warn("request failed", map[string]any{"err": err})
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := readAtMost(resp.Body, maxBody)
	if err != nil {
		log.Warn("reading body failed", map[string]any{"err": err, "status": resp.StatusCode})
		return &NetworkError{Err: err}
	}

	log.Debug("request completed", map[string]any{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
		"bytes":       len(raw),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrNoData
	}

	if c.CamelizeKeys {
		converted, err := camelizeJSON(raw)
		if err != nil {
			return &DecodeError{Err: err}
		}
		raw = converted
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Err: err}
	}

	return nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidURL)
	}

	// Si ya es URL absoluta, úsala tal cual.
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		if _, err := url.ParseRequestURI(pathOrURL); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
		}
		return pathOrURL, nil
	}

	// Si no es absoluta, requiere BaseURL.
	if strings.TrimSpace(c.BaseURL) == "" {
		return "", fmt.Errorf("%w: relative path requires BaseURL", ErrInvalidURL)
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	full := c.BaseURL + pathOrURL
	if _, err := url.ParseRequestURI(full); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return full, nil
}

func (c *Client) requestID() string {
	if c.newRequestID == nil {
		return uuid.NewString()
	}
	return c.newRequestID()
}

func (c *Client) logger() logger.Logger {
	if c.Log == nil {
		return logger.NewNop()
	}
	return c.Log
}

// WithQuery agrega query params a un path; omite valores vacíos.
func WithQuery(path string, q url.Values) string {
	clean := url.Values{}
	for k, vs := range q {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				clean.Add(k, v)
			}
		}
	}
	if len(clean) == 0 {
		return path
	}
	return path + "?" + clean.Encode()
}

// errorMessage saca "message" de un body de error {success:false, message}.
func errorMessage(raw []byte) string {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = 1 << 20
	}
	lr := io.LimitReader(r, max)
	b, err := io.ReadAll(lr)
	if err != nil && !errors.Is(err, io.EOF) {
		return b, err
	}
	return b, nil
}
