package reports

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
	basePath               = "/api/reports"
	pathNearby             = basePath + "/nearby"
	pathMine               = basePath + "/my-reports"
	pathOrganizationAssign = basePath + "/organization/assigned"
	pathVeterinaryAssign   = basePath + "/veterinary/assigned"

	DefaultLimit       = 20
	DefaultMaxDistance = 10000 // metros
)

var ErrInvalidInput = httpclient.ErrInvalidInput

// Service habla con /api/reports. No valida transiciones de estado.
type Service struct {
	http httpclient.Doer
}

func NewService(d httpclient.Doer) *Service {
	return &Service{http: d}
}

func (s *Service) List(ctx context.Context, f Filter) (envelope.Paginated[Report], error) {
	q := pageQuery(f.Page, f.Limit)
	q.Set("status", string(f.Status))
	q.Set("urgencyLevel", string(f.UrgencyLevel))
	q.Set("animalType", string(f.AnimalType))
	return envelope.GetPage[Report](ctx, s.http, httpclient.WithQuery(basePath, q))
}

// Nearby: maxDistance <= 0 usa DefaultMaxDistance.
func (s *Service) Nearby(ctx context.Context, lat, lng float64, maxDistance int) ([]Report, error) {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("maxDistance", strconv.Itoa(maxDistance))
	return envelope.Get[[]Report](ctx, s.http, http.MethodGet, httpclient.WithQuery(pathNearby, q), nil)
}

func (s *Service) Mine(ctx context.Context, page, limit int) (envelope.Paginated[Report], error) {
	return envelope.GetPage[Report](ctx, s.http, httpclient.WithQuery(pathMine, pageQuery(page, limit)))
}

func (s *Service) OrganizationAssigned(ctx context.Context, page, limit int, status Status) (envelope.Paginated[Report], error) {
	q := pageQuery(page, limit)
	q.Set("status", string(status))
	return envelope.GetPage[Report](ctx, s.http, httpclient.WithQuery(pathOrganizationAssign, q))
}

func (s *Service) VeterinaryAssigned(ctx context.Context, page, limit int) (envelope.Paginated[Report], error) {
	return envelope.GetPage[Report](ctx, s.http, httpclient.WithQuery(pathVeterinaryAssign, pageQuery(page, limit)))
}

func (s *Service) Get(ctx context.Context, id string) (Report, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Report{}, ErrInvalidInput
	}
	return envelope.Get[Report](ctx, s.http, http.MethodGet, basePath+"/"+url.PathEscape(id), nil)
}

func (s *Service) Create(ctx context.Context, in CreateRequest) (Report, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" || in.UrgencyLevel == "" || in.AnimalType == "" {
		return Report{}, ErrInvalidInput
	}
	if in.PhotoURLs == nil {
		in.PhotoURLs = []string{}
	}
	return envelope.Get[Report](ctx, s.http, http.MethodPost, basePath, in)
}

// UpdateStatus reenvía cualquier estado no vacío; la legalidad la decide el server.
// Puede devolver nil si el server no manda el reporte: quien llama debe releer con Get.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status, notes *string) (*Report, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(string(status)) == "" {
		return nil, ErrInvalidInput
	}
	return envelope.GetOptional[Report](ctx, s.http, http.MethodPut, basePath+"/"+url.PathEscape(id), UpdateStatusRequest{
		Status: status,
		Notes:  notes,
	})
}

func pageQuery(page, limit int) url.Values {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}
