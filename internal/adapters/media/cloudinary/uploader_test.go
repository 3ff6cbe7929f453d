package cloudinary

import (
	"context"
	"testing"

	"epaw/internal/ports/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresCloudName(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNew_AppliesDefaults(t *testing.T) {
	u, err := New(Config{CloudName: "demo"}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPreset, u.cfg.UploadPreset)
	assert.Equal(t, DefaultFolder, u.cfg.Folder)
}

func TestUpload_RejectsEmptyImage(t *testing.T) {
	u, err := New(Config{CloudName: "demo"}, nil)
	require.NoError(t, err)

	_, err = u.Upload(context.Background(), media.File{Name: "empty.jpg"})
	assert.ErrorIs(t, err, ErrEmptyImage)

	var nilUploader *Uploader
	_, err = nilUploader.Upload(context.Background(), media.File{Data: []byte{1}})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
