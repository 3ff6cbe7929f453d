package adoptions

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"epaw/internal/platform/envelope"
	"epaw/internal/platform/httpclient"
)

const (
	basePath         = "/api/adoptions"
	pathMine         = basePath + "/my-applications"
	pathOrganization = basePath + "/organization/"
	pathAnimal       = basePath + "/animal/"

	DefaultLimit             = 10
	DefaultOrganizationLimit = 20
)

var ErrInvalidInput = httpclient.ErrInvalidInput

// Service habla con /api/adoptions. Solo reenvía parámetros:
// quién puede cambiar qué estado lo decide el server.
type Service struct {
	http httpclient.Doer
}

func NewService(d httpclient.Doer) *Service {
	return &Service{http: d}
}

func (s *Service) Submit(ctx context.Context, animalID, message string, info AdopterInfo) (Adoption, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" || strings.TrimSpace(message) == "" {
		return Adoption{}, ErrInvalidInput
	}
	if info.HomeType == "" {
		info.HomeType = HomeOther
	}
	return envelope.Get[Adoption](ctx, s.http, http.MethodPost, basePath, SubmitRequest{
		AnimalID:           animalID,
		ApplicationMessage: strings.TrimSpace(message),
		AdopterInfo:        info,
	})
}

func (s *Service) MyApplications(ctx context.Context, page, limit int, status Status) (envelope.Paginated[Adoption], error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := pageQuery(page, limit)
	q.Set("status", string(status))
	return envelope.GetPage[Adoption](ctx, s.http, httpclient.WithQuery(pathMine, q))
}

func (s *Service) Get(ctx context.Context, id string) (Adoption, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Adoption{}, ErrInvalidInput
	}
	return envelope.Get[Adoption](ctx, s.http, http.MethodGet, basePath+"/"+url.PathEscape(id), nil)
}

// Cancel siempre llega al server, aunque la solicitud ya esté cancelada.
func (s *Service) Cancel(ctx context.Context, id string) (Adoption, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Adoption{}, ErrInvalidInput
	}
	return envelope.Get[Adoption](ctx, s.http, http.MethodPut, basePath+"/"+url.PathEscape(id)+"/cancel", nil)
}

func (s *Service) ForOrganization(ctx context.Context, orgID string, page, limit int, status Status) (envelope.Paginated[Adoption], error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return envelope.Paginated[Adoption]{}, ErrInvalidInput
	}
	if limit <= 0 {
		limit = DefaultOrganizationLimit
	}
	q := pageQuery(page, limit)
	q.Set("status", string(status))
	return envelope.GetPage[Adoption](ctx, s.http, httpclient.WithQuery(pathOrganization+url.PathEscape(orgID), q))
}

func (s *Service) ForAnimal(ctx context.Context, animalID string) ([]Adoption, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, ErrInvalidInput
	}
	return envelope.Get[[]Adoption](ctx, s.http, http.MethodGet, pathAnimal+url.PathEscape(animalID), nil)
}

// UpdateStatus no valida la transición. data null + message => error con ese message.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status, reviewNotes, rejectionReason *string) (Adoption, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(string(status)) == "" {
		return Adoption{}, ErrInvalidInput
	}
	return envelope.Get[Adoption](ctx, s.http, http.MethodPut, basePath+"/"+url.PathEscape(id)+"/status", UpdateStatusRequest{
		Status:          status,
		ReviewNotes:     reviewNotes,
		RejectionReason: rejectionReason,
	})
}

func pageQuery(page, limit int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}
