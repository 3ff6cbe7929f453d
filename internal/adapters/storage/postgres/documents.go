package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"epaw/internal/ports/storage"
)

// DocumentsRepo guarda cada documento como JSONB en la tabla documents.
type DocumentsRepo struct {
	db *sql.DB
}

var _ storage.DocumentStore = (*DocumentsRepo)(nil)

func NewDocumentsRepo(db *sql.DB) *DocumentsRepo {
	return &DocumentsRepo{db: db}
}

func (r *DocumentsRepo) Put(ctx context.Context, collection, id string, body json.RawMessage) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("document id required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, body)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id)
		DO UPDATE SET body = EXCLUDED.body, updated_at = now()
	`,
		collection,
		id,
		[]byte(body),
	)
	return err
}

func (r *DocumentsRepo) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}

	var body []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT body
		FROM documents
		WHERE collection = $1 AND id = $2
	`, collection, id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return body, nil
}

func (r *DocumentsRepo) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT body
		FROM documents
		WHERE collection = $1
		ORDER BY seq ASC
	`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]json.RawMessage, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		out = append(out, body)
	}
	return out, rows.Err()
}
