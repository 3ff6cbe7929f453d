package media

import (
	"context"
	"fmt"
)

// File es una imagen lista para subir.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader sube un archivo a un host externo y devuelve su URL pública.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// UploadAll sube en orden, uno por uno; corta en el primer error.
func UploadAll(ctx context.Context, u Uploader, files []File) ([]string, error) {
	urls := make([]string, 0, len(files))
	for i, f := range files {
		url, err := u.Upload(ctx, f)
		if err != nil {
			return urls, fmt.Errorf("upload %d/%d (%s): %w", i+1, len(files), f.Name, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}
