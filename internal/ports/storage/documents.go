package storage

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// Collections del sandbox.
const (
	Users          = "users"
	Reports        = "reports"
	Adoptions      = "adoptions"
	MedicalRecords = "medical_records"
	Animals        = "animals"
)

// DocumentStore guarda documentos JSON por colección e id.
// List devuelve en orden de creación (el primero que se guardó va primero).
type DocumentStore interface {
	Put(ctx context.Context, collection, id string, body json.RawMessage) error
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
	List(ctx context.Context, collection string) ([]json.RawMessage, error)
}

// Load decodifica un documento en v.
func Load(ctx context.Context, s DocumentStore, collection, id string, v any) error {
	raw, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// Save serializa v y lo guarda (upsert).
func Save(ctx context.Context, s DocumentStore, collection, id string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(ctx, collection, id, raw)
}

// All decodifica la colección completa.
func All[T any](ctx context.Context, s DocumentStore, collection string) ([]T, error) {
	docs, err := s.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, raw := range docs {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
