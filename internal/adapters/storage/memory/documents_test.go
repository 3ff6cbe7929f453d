package memory

import (
	"context"
	"encoding/json"
	"testing"

	"epaw/internal/ports/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_PutGetList(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()

	require.NoError(t, s.Put(ctx, storage.Reports, "b", json.RawMessage(`{"n":1}`)))
	require.NoError(t, s.Put(ctx, storage.Reports, "a", json.RawMessage(`{"n":2}`)))
	require.NoError(t, s.Put(ctx, storage.Reports, "b", json.RawMessage(`{"n":3}`)))

	raw, err := s.Get(ctx, storage.Reports, "b")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":3}`, string(raw))

	list, err := s.List(ctx, storage.Reports)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.JSONEq(t, `{"n":3}`, string(list[0]), "update keeps insertion order")
	assert.JSONEq(t, `{"n":2}`, string(list[1]))

	_, err = s.Get(ctx, storage.Animals, "b")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.Error(t, s.Put(ctx, storage.Reports, " ", json.RawMessage(`{}`)))
}

func TestDocumentStore_TypedHelpers(t *testing.T) {
	type doc struct {
		Name string `json:"name"`
	}
	ctx := context.Background()
	s := NewDocumentStore()

	require.NoError(t, storage.Save(ctx, s, storage.Users, "u1", doc{Name: "Ana"}))
	require.NoError(t, storage.Save(ctx, s, storage.Users, "u2", doc{Name: "Beto"}))

	var got doc
	require.NoError(t, storage.Load(ctx, s, storage.Users, "u1", &got))
	assert.Equal(t, "Ana", got.Name)

	all, err := storage.All[doc](ctx, s, storage.Users)
	require.NoError(t, err)
	assert.Equal(t, []doc{{Name: "Ana"}, {Name: "Beto"}}, all)
}
