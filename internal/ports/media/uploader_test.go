package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, f File) (string, error) {
	args := m.Called(f.Name)
	return args.String(0), args.Error(1)
}

func TestUploadAll_KeepsOrder(t *testing.T) {
	u := &mockUploader{}
	u.On("Upload", "a.jpg").Return("https://cdn/a.jpg", nil).Once()
	u.On("Upload", "b.jpg").Return("https://cdn/b.jpg", nil).Once()

	urls, err := UploadAll(context.Background(), u, []File{{Name: "a.jpg"}, {Name: "b.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}, urls)
	u.AssertExpectations(t)
}

func TestUploadAll_StopsOnFirstError(t *testing.T) {
	u := &mockUploader{}
	boom := errors.New("boom")
	u.On("Upload", "a.jpg").Return("", boom).Once()

	urls, err := UploadAll(context.Background(), u, []File{{Name: "a.jpg"}, {Name: "b.jpg"}})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, urls)
	u.AssertNotCalled(t, "Upload", "b.jpg")
}
