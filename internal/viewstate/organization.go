package viewstate

import (
	"context"

	"epaw/internal/domain/animals"
	"epaw/internal/domain/organizations"
	"epaw/internal/platform/logger"
)

type StatsSource interface {
	Stats(ctx context.Context, orgID string) (organizations.Stats, error)
}

type AnimalSource interface {
	List(ctx context.Context, status animals.Status) ([]animals.Animal, error)
	Create(ctx context.Context, in animals.CreateRequest) (animals.Animal, error)
}

var (
	_ StatsSource        = (*organizations.Service)(nil)
	_ OrganizationSource = (*organizations.Service)(nil)
	_ AnimalSource       = (*animals.Service)(nil)
)

type DashboardSnapshot struct {
	Status
	Stats   *organizations.Stats
	Animals []animals.Animal
}

// OrganizationDashboard junta estadísticas y animales publicados.
type OrganizationDashboard struct {
	state
	stats   StatsSource
	animals AnimalSource

	current *organizations.Stats
	list    []animals.Animal
}

func NewOrganizationDashboard(stats StatsSource, an AnimalSource, log logger.Logger) *OrganizationDashboard {
	d := &OrganizationDashboard{stats: stats, animals: an}
	d.setup(log, "organization_dashboard")
	return d
}

func (d *OrganizationDashboard) Snapshot() DashboardSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := DashboardSnapshot{Status: d.st, Animals: append([]animals.Animal(nil), d.list...)}
	if d.current != nil {
		s := *d.current
		out.Stats = &s
	}
	return out
}

// Load pide stats y después animales; si stats falla no sigue.
func (d *OrganizationDashboard) Load(ctx context.Context, orgID string, status animals.Status) {
	d.start()
	st, err := d.stats.Stats(ctx, orgID)
	if err != nil {
		d.fail(err, "load stats")
		return
	}
	d.update(func() { d.current = &st })

	list, err := d.animals.List(ctx, status)
	if err != nil {
		d.fail(err, "load animals")
		return
	}
	d.update(func() {
		d.list = list
		d.st.Loading = false
	})
}

// CreateAnimal publica un animal rescatado y lo suma al dashboard.
func (d *OrganizationDashboard) CreateAnimal(ctx context.Context, in animals.CreateRequest) bool {
	d.start()
	a, err := d.animals.Create(ctx, in)
	if err != nil {
		d.fail(err, "create animal")
		return false
	}
	d.update(func() {
		d.list = append([]animals.Animal{a}, d.list...)
		if d.current != nil {
			d.current.Animals.Total++
			if a.Status == animals.StatusAvailable {
				d.current.Animals.Available++
			}
		}
		d.st.Loading = false
	})
	return true
}
