package veterinaries

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"epaw/internal/domain/shared"
	"epaw/internal/domain/users"
	"epaw/internal/platform/envelope"
	"epaw/internal/platform/httpclient"
)

const (
	basePath   = "/api/veterinaries"
	pathSearch = basePath + "/search"
	pathNearby = basePath + "/nearby"

	DefaultLimit       = 10
	DefaultMaxDistance = 20000 // metros
)

var ErrInvalidInput = httpclient.ErrInvalidInput

// Veterinary es el ítem resumido de los listados.
type Veterinary struct {
	ID                shared.ID                `json:"id"`
	Name              string                   `json:"name"`
	Email             string                   `json:"email"`
	Phone             string                   `json:"phone,omitempty"`
	Address           string                   `json:"address,omitempty"`
	ProfilePhotoURL   string                   `json:"profilePhotoUrl,omitempty"`
	VeterinaryDetails *users.VeterinaryDetails `json:"veterinaryDetails,omitempty"`
}

func (v Veterinary) DisplayName() string {
	if v.VeterinaryDetails != nil && v.VeterinaryDetails.ClinicName != "" {
		return v.VeterinaryDetails.ClinicName
	}
	return v.Name
}

// Page es el listado paginado; acá data viene anidado: {data: {data: [...], pagination}}.
type Page struct {
	Veterinaries []Veterinary         `json:"data"`
	Pagination   *envelope.Pagination `json:"pagination,omitempty"`
}

type Service struct {
	http httpclient.Doer
}

func NewService(d httpclient.Doer) *Service {
	return &Service{http: d}
}

func (s *Service) List(ctx context.Context, page, limit int) (Page, error) {
	return s.page(ctx, basePath, pageQuery(page, limit))
}

func (s *Service) SearchBySpecialty(ctx context.Context, specialty string, page, limit int) (Page, error) {
	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		return Page{}, ErrInvalidInput
	}
	q := pageQuery(page, limit)
	q.Set("specialty", specialty)
	return s.page(ctx, pathSearch, q)
}

// Nearby: maxDistance <= 0 usa DefaultMaxDistance.
func (s *Service) Nearby(ctx context.Context, lat, lng float64, maxDistance int) ([]Veterinary, error) {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("maxDistance", strconv.Itoa(maxDistance))
	return envelope.Get[[]Veterinary](ctx, s.http, http.MethodGet, httpclient.WithQuery(pathNearby, q), nil)
}

func (s *Service) Get(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, ErrInvalidInput
	}
	return envelope.Get[users.User](ctx, s.http, http.MethodGet, basePath+"/"+url.PathEscape(id), nil)
}

func (s *Service) page(ctx context.Context, path string, q url.Values) (Page, error) {
	p, err := envelope.Get[Page](ctx, s.http, http.MethodGet, httpclient.WithQuery(path, q), nil)
	if err != nil {
		return Page{}, err
	}
	if p.Veterinaries == nil {
		p.Veterinaries = []Veterinary{}
	}
	return p, nil
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
