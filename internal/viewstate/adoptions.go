package viewstate

import (
	"context"
	"strings"

	"epaw/internal/domain/adoptions"
	"epaw/internal/platform/envelope"
	"epaw/internal/platform/logger"
)

type AdoptionSource interface {
	MyApplications(ctx context.Context, page, limit int, status adoptions.Status) (envelope.Paginated[adoptions.Adoption], error)
	ForOrganization(ctx context.Context, orgID string, page, limit int, status adoptions.Status) (envelope.Paginated[adoptions.Adoption], error)
	UpdateStatus(ctx context.Context, id string, status adoptions.Status, reviewNotes, rejectionReason *string) (adoptions.Adoption, error)
	Cancel(ctx context.Context, id string) (adoptions.Adoption, error)
	Submit(ctx context.Context, animalID, message string, info adoptions.AdopterInfo) (adoptions.Adoption, error)
	Get(ctx context.Context, id string) (adoptions.Adoption, error)
	ForAnimal(ctx context.Context, animalID string) ([]adoptions.Adoption, error)
}

var _ AdoptionSource = (*adoptions.Service)(nil)

type BoardSnapshot struct {
	Status
	Applications []adoptions.Adoption
	CurrentPage  int
	TotalPages   int
	Selected     *adoptions.Adoption
}

// AdoptionBoard sirve a la organización (revisar solicitudes) y al solicitante (sus solicitudes).
type AdoptionBoard struct {
	state
	svc AdoptionSource

	items       []adoptions.Adoption
	currentPage int
	totalPages  int
	selected    *adoptions.Adoption
}

func NewAdoptionBoard(svc AdoptionSource, log logger.Logger) *AdoptionBoard {
	b := &AdoptionBoard{svc: svc, currentPage: 1, totalPages: 1}
	b.setup(log, "adoption_board")
	return b
}

func (b *AdoptionBoard) Snapshot() BoardSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := BoardSnapshot{
		Status:       b.st,
		Applications: append([]adoptions.Adoption(nil), b.items...),
		CurrentPage:  b.currentPage,
		TotalPages:   b.totalPages,
	}
	if b.selected != nil {
		a := *b.selected
		out.Selected = &a
	}
	return out
}

func (b *AdoptionBoard) LoadOrganization(ctx context.Context, orgID string, page int, status adoptions.Status) {
	b.start()
	res, err := b.svc.ForOrganization(ctx, orgID, page, 0, status)
	if err != nil {
		b.fail(err, "load organization applications")
		return
	}
	b.apply(page, res)
}

func (b *AdoptionBoard) LoadMine(ctx context.Context, page int, status adoptions.Status) {
	b.start()
	res, err := b.svc.MyApplications(ctx, page, 0, status)
	if err != nil {
		b.fail(err, "load my applications")
		return
	}
	b.apply(page, res)
}

// LoadAnimal lista las solicitudes de un animal; no viene paginado.
func (b *AdoptionBoard) LoadAnimal(ctx context.Context, animalID string) {
	b.start()
	list, err := b.svc.ForAnimal(ctx, animalID)
	if err != nil {
		b.fail(err, "load animal applications")
		return
	}
	b.update(func() {
		b.items = list
		b.currentPage, b.totalPages = 1, 1
		b.st.Loading = false
	})
}

// Open trae la solicitud completa y la deja seleccionada.
func (b *AdoptionBoard) Open(ctx context.Context, id string) bool {
	b.start()
	a, err := b.svc.Get(ctx, id)
	if err != nil {
		b.fail(err, "open application")
		return false
	}
	b.update(func() { b.selected = &a })
	b.replace(a)
	return true
}

// Apply envía una solicitud nueva y la agrega al principio de la lista.
func (b *AdoptionBoard) Apply(ctx context.Context, animalID, message string, info adoptions.AdopterInfo) bool {
	b.start()
	a, err := b.svc.Submit(ctx, animalID, message, info)
	if err != nil {
		b.fail(err, "submit application")
		return false
	}
	b.update(func() {
		b.items = append([]adoptions.Adoption{a}, b.items...)
		b.selected = &a
		b.st.Loading = false
	})
	return true
}

func (b *AdoptionBoard) Approve(ctx context.Context, id, notes string) bool {
	return b.change(ctx, id, adoptions.StatusApproved, optional(notes), nil)
}

func (b *AdoptionBoard) Reject(ctx context.Context, id, reason string) bool {
	return b.change(ctx, id, adoptions.StatusRejected, nil, optional(reason))
}

func (b *AdoptionBoard) Complete(ctx context.Context, id string) bool {
	return b.change(ctx, id, adoptions.StatusCompleted, nil, nil)
}

// Cancel la manda siempre; si ya no se puede cancelar lo dice el server.
func (b *AdoptionBoard) Cancel(ctx context.Context, id string) bool {
	b.start()
	a, err := b.svc.Cancel(ctx, id)
	if err != nil {
		b.fail(err, "cancel application")
		return false
	}
	b.replace(a)
	return true
}

func (b *AdoptionBoard) change(ctx context.Context, id string, status adoptions.Status, notes, reason *string) bool {
	b.start()
	a, err := b.svc.UpdateStatus(ctx, id, status, notes, reason)
	if err != nil {
		b.fail(err, "update application status")
		return false
	}
	b.replace(a)
	return true
}

// replace actualiza la solicitud en la lista con lo que devolvió el server.
func (b *AdoptionBoard) replace(a adoptions.Adoption) {
	b.update(func() {
		for i := range b.items {
			if b.items[i].ID == a.ID {
				b.items[i] = a
				break
			}
		}
		b.st.Loading = false
	})
}

func (b *AdoptionBoard) apply(page int, res envelope.Paginated[adoptions.Adoption]) {
	b.update(func() {
		b.items = mergePage(b.items, res.Data, page)
		b.currentPage, b.totalPages = pageBounds(page, res.Pagination)
		b.st.Loading = false
	})
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// mergePage: página 1 (o menor) reemplaza, el resto se agrega.
func mergePage[T any](cur, next []T, page int) []T {
	if page <= 1 {
		return append([]T(nil), next...)
	}
	return append(cur, next...)
}

func pageBounds(page int, p *envelope.Pagination) (int, int) {
	if page < 1 {
		page = 1
	}
	if p == nil {
		return page, page
	}
	return p.CurrentPage, p.TotalPages
}
