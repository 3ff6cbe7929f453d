package azureblob

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(Config{AccountName: "acct"}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNew_BuildsClient(t *testing.T) {
	// La key debe ser base64 válida; no se hace ninguna llamada de red.
	u, err := New(Config{AccountName: "acct", AccountKey: "c2VjcmV0", Container: "photos"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "epaws", u.cfg.Folder)
}

func TestBlobName(t *testing.T) {
	n := blobName("epaws", "Foto.PNG")
	assert.True(t, strings.HasPrefix(n, "epaws/"))
	assert.True(t, strings.HasSuffix(n, ".png"))
	assert.NotEqual(t, n, blobName("epaws", "Foto.PNG"))

	assert.True(t, strings.HasSuffix(blobName("epaws", "sin-ext"), ".jpg"))
}
