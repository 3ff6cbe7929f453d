package postgres

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"epaw/internal/domain/shared"
	"epaw/internal/ports/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Corre solo contra una base real: EPAW_TEST_DSN=postgres://...
func TestDocumentsRepo(t *testing.T) {
	dsn := os.Getenv("EPAW_TEST_DSN")
	if dsn == "" {
		t.Skip("EPAW_TEST_DSN not set")
	}

	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))

	repo := NewDocumentsRepo(db)
	collection := "test_" + shared.NewID()
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), `DELETE FROM documents WHERE collection = $1`, collection)
	})

	require.NoError(t, repo.Put(ctx, collection, "a", json.RawMessage(`{"n":1}`)))
	require.NoError(t, repo.Put(ctx, collection, "b", json.RawMessage(`{"n":2}`)))
	require.NoError(t, repo.Put(ctx, collection, "a", json.RawMessage(`{"n":3}`)))

	raw, err := repo.Get(ctx, collection, "a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":3}`, string(raw))

	list, err := repo.List(ctx, collection)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.JSONEq(t, `{"n":3}`, string(list[0]))

	_, err = repo.Get(ctx, collection, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
