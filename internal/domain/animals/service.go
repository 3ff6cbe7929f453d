package animals

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"epaw/internal/platform/envelope"
	"epaw/internal/platform/httpclient"
)

const basePath = "/api/animals"

var ErrInvalidInput = httpclient.ErrInvalidInput

type Service struct {
	http httpclient.Doer
}

func NewService(d httpclient.Doer) *Service {
	return &Service{http: d}
}

// List filtra por estado; vacío equivale a available.
func (s *Service) List(ctx context.Context, status Status) ([]Animal, error) {
	if status == "" {
		status = StatusAvailable
	}
	q := url.Values{}
	q.Set("status", string(status))
	out, err := envelope.GetOptional[[]Animal](ctx, s.http, http.MethodGet, httpclient.WithQuery(basePath, q), nil)
	if err != nil {
		return nil, err
	}
	if out == nil || *out == nil {
		return []Animal{}, nil
	}
	return *out, nil
}

func (s *Service) Get(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	return envelope.Get[Animal](ctx, s.http, http.MethodGet, basePath+"/"+url.PathEscape(id), nil)
}

func (s *Service) Create(ctx context.Context, in CreateRequest) (Animal, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.ReportID == "" || in.Name == "" || in.Species == "" {
		return Animal{}, ErrInvalidInput
	}
	if in.Gender == "" {
		in.Gender = GenderUnknown
	}
	if in.Size == "" {
		in.Size = SizeMedium
	}
	if in.PhotoURLs == nil {
		in.PhotoURLs = []string{}
	}
	return envelope.Get[Animal](ctx, s.http, http.MethodPost, basePath, in)
}
