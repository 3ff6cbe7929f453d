package envelope

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"epaw/internal/platform/httpclient"
)

// Envelope es el wrapper {success, data, message} de casi todas las respuestas.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// Pagination viene junto a data en los listados paginados.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// Paginated es {success, data: [...], pagination, message}.
// Pagination queda nil si el server no la manda.
type Paginated[T any] struct {
	Success    bool        `json:"success"`
	Data       []T         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Message    string      `json:"message,omitempty"`
}

type rawEnvelope struct {
	Success    *bool           `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
	Message    string          `json:"message"`
}

// Decode desarma un envelope y devuelve data tipada.
// data null/ausente con message => MessageError(message); sin message => ErrNoData.
func Decode[T any](raw []byte) (T, error) {
	var zero T
	env, err := parse(raw)
	if err != nil {
		return zero, err
	}
	if isNull(env.Data) {
		return zero, missingData(env)
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return zero, &httpclient.DecodeError{Err: err}
	}
	return out, nil
}

// DecodeOptional es como Decode pero acepta data ausente (respuestas "void").
func DecodeOptional[T any](raw []byte) (*T, error) {
	env, err := parse(raw)
	if err != nil {
		return nil, err
	}
	if isNull(env.Data) {
		if env.Success != nil && !*env.Success && env.Message != "" {
			return nil, &httpclient.MessageError{Message: env.Message}
		}
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, &httpclient.DecodeError{Err: err}
	}
	return &out, nil
}

// DecodePage desarma un envelope paginado.
func DecodePage[T any](raw []byte) (Paginated[T], error) {
	env, err := parse(raw)
	if err != nil {
		return Paginated[T]{}, err
	}
	if isNull(env.Data) {
		return Paginated[T]{}, missingData(env)
	}
	var items []T
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return Paginated[T]{}, &httpclient.DecodeError{Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		Success:    env.Success == nil || *env.Success,
		Data:       items,
		Pagination: env.Pagination,
		Message:    env.Message,
	}, nil
}

// Get hace el request y devuelve data tipada.
func Get[T any](ctx context.Context, d httpclient.Doer, method, path string, in any) (T, error) {
	var zero T
	raw, err := call(ctx, d, method, path, in)
	if err != nil {
		return zero, err
	}
	return Decode[T](raw)
}

// GetOptional hace el request y tolera data ausente.
func GetOptional[T any](ctx context.Context, d httpclient.Doer, method, path string, in any) (*T, error) {
	raw, err := call(ctx, d, method, path, in)
	if errors.Is(err, httpclient.ErrNoData) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeOptional[T](raw)
}

// GetPage hace el request de un listado paginado.
func GetPage[T any](ctx context.Context, d httpclient.Doer, path string) (Paginated[T], error) {
	raw, err := call(ctx, d, http.MethodGet, path, nil)
	if err != nil {
		return Paginated[T]{}, err
	}
	return DecodePage[T](raw)
}

func call(ctx context.Context, d httpclient.Doer, method, path string, in any) ([]byte, error) {
	var raw json.RawMessage
	if err := d.DoJSON(ctx, method, path, nil, in, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func parse(raw []byte) (rawEnvelope, error) {
	var env rawEnvelope
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return env, httpclient.ErrNoData
	}
	if trimmed[0] != '{' {
		return env, fmt.Errorf("%w: expected object envelope", httpclient.ErrInvalidResponse)
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return env, fmt.Errorf("%w: %v", httpclient.ErrInvalidResponse, err)
	}
	return env, nil
}

func missingData(env rawEnvelope) error {
	if env.Message != "" {
		return &httpclient.MessageError{Message: env.Message}
	}
	return httpclient.ErrNoData
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}
