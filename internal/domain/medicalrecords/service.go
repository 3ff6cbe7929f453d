package medicalrecords

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"epaw/internal/platform/envelope"
	"epaw/internal/platform/httpclient"
)

const (
	basePath   = "/api/medical-records"
	pathAnimal = basePath + "/animal/"
	pathCases  = basePath + "/my-cases"

	DefaultLimit = 20
)

var ErrInvalidInput = httpclient.ErrInvalidInput

type Service struct {
	http httpclient.Doer
	now  func() time.Time
}

func NewService(d httpclient.Doer) *Service {
	return &Service{http: d, now: time.Now}
}

func (s *Service) Create(ctx context.Context, in CreateRequest) (Record, error) {
	in.Diagnosis = strings.TrimSpace(in.Diagnosis)
	in.Treatment = strings.TrimSpace(in.Treatment)
	if in.AnimalID == "" && in.ReportID == "" {
		return Record{}, ErrInvalidInput
	}
	if !in.VisitType.Valid() || in.Diagnosis == "" || in.Treatment == "" {
		return Record{}, ErrInvalidInput
	}
	if in.Medications == nil {
		in.Medications = []Medication{}
	}
	if in.PhotoURLs == nil {
		in.PhotoURLs = []string{}
	}
	if in.VisitDate.IsZero() {
		in.VisitDate = s.now().UTC()
	}
	return envelope.Get[Record](ctx, s.http, http.MethodPost, basePath, in)
}

func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrInvalidInput
	}
	return envelope.Get[Record](ctx, s.http, http.MethodGet, basePath+"/"+url.PathEscape(id), nil)
}

// AnimalHistory: data null se lee como historial vacío.
func (s *Service) AnimalHistory(ctx context.Context, animalID string) ([]Record, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, ErrInvalidInput
	}
	out, err := envelope.GetOptional[[]Record](ctx, s.http, http.MethodGet, pathAnimal+url.PathEscape(animalID), nil)
	if err != nil {
		return nil, err
	}
	return orEmpty(out), nil
}

// VeterinaryCases lista los casos de la veterinaria logueada.
func (s *Service) VeterinaryCases(ctx context.Context, page, limit int, status Status) (envelope.Paginated[Record], error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("status", string(status))

	out, err := envelope.GetPage[Record](ctx, s.http, httpclient.WithQuery(pathCases, q))
	if errors.Is(err, httpclient.ErrNoData) {
		return envelope.Paginated[Record]{Success: true, Data: []Record{}}, nil
	}
	return out, err
}

func (s *Service) Update(ctx context.Context, id string, in UpdateRequest) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrInvalidInput
	}
	return envelope.Get[Record](ctx, s.http, http.MethodPut, basePath+"/"+url.PathEscape(id), in)
}

func orEmpty(p *[]Record) []Record {
	if p == nil || *p == nil {
		return []Record{}
	}
	return *p
}
