package viewstate

import (
	"context"
	"strings"

	"epaw/internal/domain/medicalrecords"
	"epaw/internal/domain/users"
	"epaw/internal/domain/veterinaries"
	"epaw/internal/platform/envelope"
	"epaw/internal/platform/logger"
)

type CaseSource interface {
	VeterinaryCases(ctx context.Context, page, limit int, status medicalrecords.Status) (envelope.Paginated[medicalrecords.Record], error)
	Update(ctx context.Context, id string, in medicalrecords.UpdateRequest) (medicalrecords.Record, error)
	Create(ctx context.Context, in medicalrecords.CreateRequest) (medicalrecords.Record, error)
}

var _ CaseSource = (*medicalrecords.Service)(nil)

type CasesSnapshot struct {
	Status
	Cases       []medicalrecords.Record
	CurrentPage int
	TotalPages  int
}

// VeterinaryCases es la bandeja de casos médicos de la veterinaria.
type VeterinaryCases struct {
	state
	svc CaseSource

	items       []medicalrecords.Record
	currentPage int
	totalPages  int
	filter      medicalrecords.Status
}

func NewVeterinaryCases(svc CaseSource, log logger.Logger) *VeterinaryCases {
	c := &VeterinaryCases{svc: svc, currentPage: 1, totalPages: 1}
	c.setup(log, "veterinary_cases")
	return c
}

func (c *VeterinaryCases) Snapshot() CasesSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CasesSnapshot{
		Status:      c.st,
		Cases:       append([]medicalrecords.Record(nil), c.items...),
		CurrentPage: c.currentPage,
		TotalPages:  c.totalPages,
	}
}

func (c *VeterinaryCases) Load(ctx context.Context, page int, status medicalrecords.Status) {
	c.start()
	res, err := c.svc.VeterinaryCases(ctx, page, 0, status)
	if err != nil {
		c.fail(err, "load cases")
		return
	}
	c.update(func() {
		c.items = mergePage(c.items, res.Data, page)
		c.currentPage, c.totalPages = pageBounds(page, res.Pagination)
		c.filter = status
		c.st.Loading = false
	})
}

func (c *VeterinaryCases) LoadMore(ctx context.Context) {
	c.mu.Lock()
	next, status := c.currentPage+1, c.filter
	more := next <= c.totalPages && !c.st.Loading
	c.mu.Unlock()
	if more {
		c.Load(ctx, next, status)
	}
}

// UpdateCase aplica el cambio parcial y reemplaza el caso en la lista.
func (c *VeterinaryCases) UpdateCase(ctx context.Context, id string, in medicalrecords.UpdateRequest) bool {
	if in.Empty() {
		return true
	}
	c.start()
	rec, err := c.svc.Update(ctx, id, in)
	if err != nil {
		c.fail(err, "update case")
		return false
	}
	c.update(func() {
		for i := range c.items {
			if c.items[i].ID == rec.ID {
				c.items[i] = rec
				break
			}
		}
		c.st.Loading = false
	})
	return true
}

// CreateCase registra la visita y la deja primera en la bandeja.
func (c *VeterinaryCases) CreateCase(ctx context.Context, in medicalrecords.CreateRequest) bool {
	c.start()
	rec, err := c.svc.Create(ctx, in)
	if err != nil {
		c.fail(err, "create case")
		return false
	}
	c.update(func() {
		c.items = append([]medicalrecords.Record{rec}, c.items...)
		c.st.Loading = false
	})
	return true
}

type HistorySource interface {
	AnimalHistory(ctx context.Context, animalID string) ([]medicalrecords.Record, error)
	Get(ctx context.Context, id string) (medicalrecords.Record, error)
}

var _ HistorySource = (*medicalrecords.Service)(nil)

type HistorySnapshot struct {
	Status
	Records  []medicalrecords.Record
	Selected *medicalrecords.Record
}

// MedicalHistory es el historial clínico de un animal con la ficha abierta.
type MedicalHistory struct {
	state
	svc HistorySource

	records  []medicalrecords.Record
	selected *medicalrecords.Record
}

func NewMedicalHistory(svc HistorySource, log logger.Logger) *MedicalHistory {
	h := &MedicalHistory{svc: svc}
	h.setup(log, "medical_history")
	return h
}

func (h *MedicalHistory) Snapshot() HistorySnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := HistorySnapshot{Status: h.st, Records: append([]medicalrecords.Record(nil), h.records...)}
	if h.selected != nil {
		r := *h.selected
		out.Selected = &r
	}
	return out
}

func (h *MedicalHistory) Load(ctx context.Context, animalID string) {
	h.start()
	list, err := h.svc.AnimalHistory(ctx, animalID)
	if err != nil {
		h.fail(err, "load history")
		return
	}
	h.update(func() {
		h.records = list
		h.st.Loading = false
	})
}

// Open trae la ficha completa (con referencias pobladas).
func (h *MedicalHistory) Open(ctx context.Context, id string) {
	h.start()
	rec, err := h.svc.Get(ctx, id)
	if err != nil {
		h.fail(err, "open record")
		return
	}
	h.update(func() {
		h.selected = &rec
		h.st.Loading = false
	})
}

type DirectorySource interface {
	List(ctx context.Context, page, limit int) (veterinaries.Page, error)
	SearchBySpecialty(ctx context.Context, specialty string, page, limit int) (veterinaries.Page, error)
	Nearby(ctx context.Context, lat, lng float64, maxDistance int) ([]veterinaries.Veterinary, error)
	Get(ctx context.Context, id string) (users.User, error)
}

var _ DirectorySource = (*veterinaries.Service)(nil)

type DirectorySnapshot struct {
	Status
	Veterinaries []veterinaries.Veterinary
	CurrentPage  int
	TotalPages   int
	Selected     *users.User
}

// VeterinaryDirectory es el buscador de veterinarias.
type VeterinaryDirectory struct {
	state
	svc DirectorySource

	items       []veterinaries.Veterinary
	currentPage int
	totalPages  int
	selected    *users.User
}

func NewVeterinaryDirectory(svc DirectorySource, log logger.Logger) *VeterinaryDirectory {
	d := &VeterinaryDirectory{svc: svc, currentPage: 1, totalPages: 1}
	d.setup(log, "veterinary_directory")
	return d
}

func (d *VeterinaryDirectory) Snapshot() DirectorySnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := DirectorySnapshot{
		Status:       d.st,
		Veterinaries: append([]veterinaries.Veterinary(nil), d.items...),
		CurrentPage:  d.currentPage,
		TotalPages:   d.totalPages,
	}
	if d.selected != nil {
		u := *d.selected
		out.Selected = &u
	}
	return out
}

func (d *VeterinaryDirectory) Load(ctx context.Context, page int) {
	d.start()
	p, err := d.svc.List(ctx, page, 0)
	if err != nil {
		d.fail(err, "load veterinaries")
		return
	}
	d.set(page, p)
}

// Search con texto vacío equivale a Load.
func (d *VeterinaryDirectory) Search(ctx context.Context, specialty string, page int) {
	if strings.TrimSpace(specialty) == "" {
		d.Load(ctx, page)
		return
	}
	d.start()
	p, err := d.svc.SearchBySpecialty(ctx, specialty, page, 0)
	if err != nil {
		d.fail(err, "search veterinaries")
		return
	}
	d.set(page, p)
}

func (d *VeterinaryDirectory) Nearby(ctx context.Context, lat, lng float64, maxDistance int) {
	d.start()
	list, err := d.svc.Nearby(ctx, lat, lng, maxDistance)
	if err != nil {
		d.fail(err, "nearby veterinaries")
		return
	}
	d.set(1, veterinaries.Page{Veterinaries: list})
}

// Open trae el perfil completo de una veterinaria.
func (d *VeterinaryDirectory) Open(ctx context.Context, id string) {
	d.start()
	u, err := d.svc.Get(ctx, id)
	if err != nil {
		d.fail(err, "open veterinary")
		return
	}
	d.update(func() {
		d.selected = &u
		d.st.Loading = false
	})
}

// set: página 1 reemplaza, las siguientes se agregan. Nearby siempre llega como página 1.
func (d *VeterinaryDirectory) set(page int, p veterinaries.Page) {
	d.update(func() {
		d.items = mergePage(d.items, p.Veterinaries, page)
		d.currentPage, d.totalPages = pageBounds(page, p.Pagination)
		d.st.Loading = false
	})
}
