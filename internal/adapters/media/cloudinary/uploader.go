package cloudinary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"epaw/internal/platform/logger"
	"epaw/internal/ports/media"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var (
	ErrNotConfigured   = errors.New("cloudinary not configured")
	ErrEmptyImage      = errors.New("image is empty")
	ErrUploadFailed    = errors.New("cloudinary upload failed")
	ErrInvalidResponse = errors.New("cloudinary invalid response")
)

const (
	DefaultPreset = "epaws_preset"
	DefaultFolder = "epaws"
)

type Config struct {
	CloudName    string
	UploadPreset string
	Folder       string

	// Opcionales: con key+secret se firma; sin ellos se usa el preset unsigned.
	APIKey    string
	APISecret string

	// UploadPrefix reemplaza https://api.cloudinary.com (tests).
	UploadPrefix string
}

func (c Config) IsConfigured() bool {
	return strings.TrimSpace(c.CloudName) != ""
}

// Uploader implementa media.Uploader contra Cloudinary.
type Uploader struct {
	client *cld.Cloudinary
	cfg    Config
	log    logger.Logger
}

var _ media.Uploader = (*Uploader)(nil)

func New(cfg Config, log logger.Logger) (*Uploader, error) {
	if !cfg.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(cfg.UploadPreset) == "" {
		cfg.UploadPreset = DefaultPreset
	}
	if strings.TrimSpace(cfg.Folder) == "" {
		cfg.Folder = DefaultFolder
	}
	if log == nil {
		log = logger.NewNop()
	}

	client, err := cld.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	if cfg.UploadPrefix != "" {
		prefix := strings.TrimRight(cfg.UploadPrefix, "/")
		client.Config.API.UploadPrefix = prefix
		client.Upload.Config.API.UploadPrefix = prefix
	}

	return &Uploader{
		client: client,
		cfg:    cfg,
		log:    log.With(map[string]any{"component": "cloudinary"}),
	}, nil
}

func (u *Uploader) Upload(ctx context.Context, f media.File) (string, error) {
	if u == nil || u.client == nil {
		return "", ErrNotConfigured
	}
	if len(f.Data) == 0 {
		return "", ErrEmptyImage
	}

	params := uploader.UploadParams{
		Folder: u.cfg.Folder,
	}

	var (
		res *uploader.UploadResult
		err error
	)
	if u.cfg.APIKey == "" || u.cfg.APISecret == "" {
		res, err = u.client.Upload.UnsignedUpload(ctx, bytes.NewReader(f.Data), u.cfg.UploadPreset, params)
	} else {
		params.UploadPreset = u.cfg.UploadPreset
		res, err = u.client.Upload.Upload(ctx, bytes.NewReader(f.Data), params)
	}
	if err != nil {
		u.log.Warn("upload failed", map[string]any{"file": f.Name, "err": err})
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if res == nil {
		return "", ErrInvalidResponse
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("%w: %s", ErrUploadFailed, res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", ErrInvalidResponse
	}

	u.log.Info("image uploaded", map[string]any{"file": f.Name, "public_id": res.PublicID, "bytes": len(f.Data)})
	return res.SecureURL, nil
}
