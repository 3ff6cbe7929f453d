package organizations

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"epaw/internal/platform/envelope"
	"epaw/internal/platform/httpclient"
)

const basePath = "/api/organizations"

var ErrInvalidInput = httpclient.ErrInvalidInput

type Service struct {
	http httpclient.Doer
}

func NewService(d httpclient.Doer) *Service {
	return &Service{http: d}
}

func (s *Service) List(ctx context.Context) ([]Organization, error) {
	out, err := envelope.Get[[]Organization](ctx, s.http, http.MethodGet, basePath, nil)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Organization{}
	}
	return out, nil
}

func (s *Service) Stats(ctx context.Context, orgID string) (Stats, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return Stats{}, ErrInvalidInput
	}
	return envelope.Get[Stats](ctx, s.http, http.MethodGet, basePath+"/"+url.PathEscape(orgID)+"/stats", nil)
}
