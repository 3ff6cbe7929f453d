package azureblob

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"epaw/internal/platform/logger"
	"epaw/internal/ports/media"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/google/uuid"
)

var ErrNotConfigured = errors.New("azure blob storage not configured")

type Config struct {
	AccountName string
	AccountKey  string
	Container   string
	Folder      string
}

func (c Config) IsConfigured() bool {
	return strings.TrimSpace(c.AccountName) != "" &&
		strings.TrimSpace(c.AccountKey) != "" &&
		strings.TrimSpace(c.Container) != ""
}

// Uploader sube fotos a un container público de Azure Blob Storage.
type Uploader struct {
	client *azblob.Client
	cfg    Config
	log    logger.Logger
}

var _ media.Uploader = (*Uploader)(nil)

func New(cfg Config, log logger.Logger) (*Uploader, error) {
	if !cfg.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(cfg.Folder) == "" {
		cfg.Folder = "epaws"
	}
	if log == nil {
		log = logger.NewNop()
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", cfg.AccountName)
	cred, err := azblob.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key credential: %w", err)
	}
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	return &Uploader{
		client: client,
		cfg:    cfg,
		log:    log.With(map[string]any{"component": "azureblob"}),
	}, nil
}

func (u *Uploader) Upload(ctx context.Context, f media.File) (string, error) {
	if u == nil || u.client == nil {
		return "", ErrNotConfigured
	}
	if len(f.Data) == 0 {
		return "", errors.New("image is empty")
	}

	name := blobName(u.cfg.Folder, f.Name)
	contentType := f.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	bc := u.client.ServiceClient().NewContainerClient(u.cfg.Container).NewBlockBlobClient(name)
	_, err := bc.UploadBuffer(ctx, f.Data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		u.log.Error("failed to upload image", map[string]any{"blob": name, "err": err})
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	u.log.Info("image uploaded", map[string]any{"blob": name, "bytes": len(f.Data)})
	return bc.URL(), nil
}

// blobName arma folder/<uuid><ext> para no pisar archivos con el mismo nombre.
func blobName(folder, original string) string {
	ext := strings.ToLower(path.Ext(original))
	if ext == "" {
		ext = ".jpg"
	}
	return path.Join(folder, uuid.NewString()+ext)
}
