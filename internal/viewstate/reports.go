package viewstate

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"epaw/internal/domain/organizations"
	"epaw/internal/domain/reports"
	"epaw/internal/platform/envelope"
	"epaw/internal/platform/logger"
	"epaw/internal/ports/media"
)

type ReportSource interface {
	OrganizationAssigned(ctx context.Context, page, limit int, status reports.Status) (envelope.Paginated[reports.Report], error)
	VeterinaryAssigned(ctx context.Context, page, limit int) (envelope.Paginated[reports.Report], error)
	Nearby(ctx context.Context, lat, lng float64, maxDistance int) ([]reports.Report, error)
	Get(ctx context.Context, id string) (reports.Report, error)
	Create(ctx context.Context, in reports.CreateRequest) (reports.Report, error)
	UpdateStatus(ctx context.Context, id string, status reports.Status, notes *string) (*reports.Report, error)
}

var _ ReportSource = (*reports.Service)(nil)

type OrganizationSource interface {
	List(ctx context.Context) ([]organizations.Organization, error)
}

const feedPageSize = 20

type feedMode int

const (
	feedNone feedMode = iota
	feedOrganization
	feedVeterinary
	feedNearby
)

type FeedSnapshot struct {
	Status
	Reports     []reports.Report
	CurrentPage int
	TotalPages  int
}

func (f FeedSnapshot) HasMore() bool { return f.CurrentPage < f.TotalPages }

// ReportFeed es la lista de reportes de la pantalla principal de cada rol.
type ReportFeed struct {
	state
	svc ReportSource

	items       []reports.Report
	currentPage int
	totalPages  int
	mode        feedMode
	filter      reports.Status
}

func NewReportFeed(svc ReportSource, log logger.Logger) *ReportFeed {
	f := &ReportFeed{svc: svc, currentPage: 1, totalPages: 1}
	f.setup(log, "report_feed")
	return f
}

func (f *ReportFeed) Snapshot() FeedSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FeedSnapshot{
		Status:      f.st,
		Reports:     append([]reports.Report(nil), f.items...),
		CurrentPage: f.currentPage,
		TotalPages:  f.totalPages,
	}
}

// LoadOrganization: page 1 reemplaza la lista, las siguientes se agregan al final.
func (f *ReportFeed) LoadOrganization(ctx context.Context, page int, status reports.Status) {
	f.start()
	res, err := f.svc.OrganizationAssigned(ctx, page, feedPageSize, status)
	if err != nil {
		f.fail(err, "load organization reports")
		return
	}
	f.apply(feedOrganization, status, page, res)
}

// LoadVeterinary ignora la llamada si ya hay una carga en curso, y descarta
// el resultado si ctx se canceló mientras tanto.
func (f *ReportFeed) LoadVeterinary(ctx context.Context, page int) {
	if !f.tryStart() {
		return
	}
	res, err := f.svc.VeterinaryAssigned(ctx, page, feedPageSize)
	if ctx.Err() != nil {
		f.done()
		return
	}
	if err != nil {
		f.fail(err, "load veterinary reports")
		return
	}
	f.apply(feedVeterinary, "", page, res)
}

func (f *ReportFeed) LoadNearby(ctx context.Context, lat, lng float64, maxDistance int) {
	f.start()
	items, err := f.svc.Nearby(ctx, lat, lng, maxDistance)
	if err != nil {
		f.fail(err, "load nearby reports")
		return
	}
	f.update(func() {
		f.items = items
		f.mode = feedNearby
		f.currentPage, f.totalPages = 1, 1
		f.st.Loading = false
	})
}

// LoadMore pide la página siguiente del último listado paginado.
func (f *ReportFeed) LoadMore(ctx context.Context) {
	f.mu.Lock()
	mode, status, next := f.mode, f.filter, f.currentPage+1
	more := next <= f.totalPages && !f.st.Loading
	f.mu.Unlock()
	if !more {
		return
	}

	switch mode {
	case feedOrganization:
		f.LoadOrganization(ctx, next, status)
	case feedVeterinary:
		f.LoadVeterinary(ctx, next)
	}
}

func (f *ReportFeed) apply(mode feedMode, status reports.Status, page int, res envelope.Paginated[reports.Report]) {
	f.update(func() {
		f.items = mergePage(f.items, res.Data, page)
		f.mode, f.filter = mode, status
		f.currentPage, f.totalPages = pageBounds(page, res.Pagination)
		f.st.Loading = false
	})
}

type DetailSnapshot struct {
	Status
	Report *reports.Report
}

// ReportDetail es la ficha de un reporte con el cambio de estado.
type ReportDetail struct {
	state
	svc    ReportSource
	report *reports.Report
}

func NewReportDetail(svc ReportSource, log logger.Logger) *ReportDetail {
	d := &ReportDetail{svc: svc}
	d.setup(log, "report_detail")
	return d
}

func (d *ReportDetail) Snapshot() DetailSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := DetailSnapshot{Status: d.st}
	if d.report != nil {
		r := *d.report
		out.Report = &r
	}
	return out
}

func (d *ReportDetail) Load(ctx context.Context, id string) {
	d.start()
	r, err := d.svc.Get(ctx, id)
	if err != nil {
		d.fail(err, "load report")
		return
	}
	d.update(func() {
		d.report = &r
		d.st.Loading = false
	})
}

// UpdateStatus manda el cambio y vuelve a leer el reporte para traer el historial
// que calcula el server.
func (d *ReportDetail) UpdateStatus(ctx context.Context, status reports.Status, notes string) bool {
	d.mu.Lock()
	if d.report == nil {
		d.mu.Unlock()
		return false
	}
	id := d.report.ID.String()
	d.mu.Unlock()

	var n *string
	if strings.TrimSpace(notes) != "" {
		n = &notes
	}

	d.start()
	if _, err := d.svc.UpdateStatus(ctx, id, status, n); err != nil {
		d.fail(err, "update report status")
		return false
	}
	d.Load(ctx, id)
	return d.Status().ErrorMessage == ""
}

// ReportDraft es lo que el usuario va llenando en el formulario.
type ReportDraft struct {
	Description     string
	UrgencyLevel    reports.UrgencyLevel
	AnimalType      reports.AnimalType
	LocationAddress string
	Latitude        float64
	Longitude       float64
	Photos          []media.File
}

func newDraft() ReportDraft {
	return ReportDraft{UrgencyLevel: reports.UrgencyMedium, AnimalType: reports.AnimalDog}
}

type FormSnapshot struct {
	Status
	Draft         ReportDraft
	Organizations []organizations.Organization
	Selected      *organizations.Organization
	CanSubmit     bool
	Submitted     bool
}

// CreateReportForm arma y envía un reporte nuevo.
type CreateReportForm struct {
	state
	reports  ReportSource
	orgs     OrganizationSource
	uploader media.Uploader

	draft     ReportDraft
	orgList   []organizations.Organization
	selected  *organizations.Organization
	submitted bool
}

// NewCreateReportForm: uploader puede ser nil si no hay proveedor de imágenes configurado.
func NewCreateReportForm(rs ReportSource, orgs OrganizationSource, up media.Uploader, log logger.Logger) *CreateReportForm {
	f := &CreateReportForm{reports: rs, orgs: orgs, uploader: up, draft: newDraft()}
	f.setup(log, "create_report")
	return f
}

var errNoUploader = errors.New("no hay proveedor de imágenes configurado")

const minDescriptionLen = 10

func (f *CreateReportForm) SetDraft(d ReportDraft) {
	f.update(func() { f.draft = d })
}

func (f *CreateReportForm) Select(orgID string) {
	f.update(func() {
		for i := range f.orgList {
			if f.orgList[i].ID.String() == orgID {
				o := f.orgList[i]
				f.selected = &o
				return
			}
		}
	})
}

func (f *CreateReportForm) Snapshot() FormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := FormSnapshot{
		Status:        f.st,
		Draft:         f.draft,
		Organizations: append([]organizations.Organization(nil), f.orgList...),
		CanSubmit:     f.canSubmit(),
		Submitted:     f.submitted,
	}
	if f.selected != nil {
		o := *f.selected
		out.Selected = &o
	}
	return out
}

func (f *CreateReportForm) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canSubmit()
}

func (f *CreateReportForm) canSubmit() bool {
	return utf8.RuneCountInString(strings.TrimSpace(f.draft.Description)) >= minDescriptionLen &&
		strings.TrimSpace(f.draft.LocationAddress) != "" &&
		f.selected != nil
}

// LoadOrganizations trae las organizaciones y deja seleccionada la primera si no había ninguna.
func (f *CreateReportForm) LoadOrganizations(ctx context.Context) {
	list, err := f.orgs.List(ctx)
	if err != nil {
		f.fail(err, "load organizations")
		return
	}
	f.update(func() {
		f.orgList = list
		if f.selected == nil && len(list) > 0 {
			o := list[0]
			f.selected = &o
		}
	})
}

// Submit sube las fotos en orden, crea el reporte y limpia el formulario.
func (f *CreateReportForm) Submit(ctx context.Context) bool {
	f.mu.Lock()
	if !f.canSubmit() {
		f.mu.Unlock()
		return false
	}
	draft, orgID := f.draft, f.selected.ID.String()
	f.mu.Unlock()

	f.start()
	f.update(func() { f.submitted = false })

	urls := []string{}
	if len(draft.Photos) > 0 {
		if f.uploader == nil {
			f.fail(errNoUploader, "upload photos")
			return false
		}
		var err error
		if urls, err = media.UploadAll(ctx, f.uploader, draft.Photos); err != nil {
			f.fail(err, "upload photos")
			return false
		}
	}

	_, err := f.reports.Create(ctx, reports.CreateRequest{
		Description:     draft.Description,
		UrgencyLevel:    draft.UrgencyLevel,
		AnimalType:      draft.AnimalType,
		Latitude:        draft.Latitude,
		Longitude:       draft.Longitude,
		LocationAddress: draft.LocationAddress,
		PhotoURLs:       urls,
		OrganizationID:  orgID,
	})
	if err != nil {
		f.fail(err, "create report")
		return false
	}

	f.update(func() {
		f.draft = newDraft()
		f.selected = nil
		if len(f.orgList) > 0 {
			o := f.orgList[0]
			f.selected = &o
		}
		f.submitted = true
		f.st.Loading = false
	})
	return true
}
