package viewstate

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"epaw/internal/domain/organizations"
	"epaw/internal/domain/reports"
	"epaw/internal/domain/shared"
	"epaw/internal/platform/envelope"
	"epaw/internal/platform/httpclient"
	"epaw/internal/ports/media"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReports struct{ mock.Mock }

func (m *mockReports) OrganizationAssigned(ctx context.Context, page, limit int, status reports.Status) (envelope.Paginated[reports.Report], error) {
	args := m.Called(ctx, page, limit, status)
	return args.Get(0).(envelope.Paginated[reports.Report]), args.Error(1)
}

func (m *mockReports) VeterinaryAssigned(ctx context.Context, page, limit int) (envelope.Paginated[reports.Report], error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).(envelope.Paginated[reports.Report]), args.Error(1)
}

func (m *mockReports) Nearby(ctx context.Context, lat, lng float64, maxDistance int) ([]reports.Report, error) {
	args := m.Called(ctx, lat, lng, maxDistance)
	return args.Get(0).([]reports.Report), args.Error(1)
}

func (m *mockReports) Get(ctx context.Context, id string) (reports.Report, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reports.Report), args.Error(1)
}

func (m *mockReports) Create(ctx context.Context, in reports.CreateRequest) (reports.Report, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(reports.Report), args.Error(1)
}

func (m *mockReports) UpdateStatus(ctx context.Context, id string, status reports.Status, notes *string) (*reports.Report, error) {
	args := m.Called(ctx, id, status, notes)
	r, _ := args.Get(0).(*reports.Report)
	return r, args.Error(1)
}

func page(ids []string, current, total int) envelope.Paginated[reports.Report] {
	out := envelope.Paginated[reports.Report]{Success: true, Data: []reports.Report{}}
	for _, id := range ids {
		out.Data = append(out.Data, reports.Report{ID: shared.ID(id)})
	}
	out.Pagination = &envelope.Pagination{CurrentPage: current, TotalPages: total}
	return out
}

func ids(rs []reports.Report) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID.String())
	}
	return out
}

func TestReportFeed_ReplaceThenAppend(t *testing.T) {
	m := &mockReports{}
	ctx := context.Background()
	m.On("OrganizationAssigned", ctx, 1, feedPageSize, reports.StatusPending).Return(page([]string{"a", "b"}, 1, 2), nil).Once()
	m.On("OrganizationAssigned", ctx, 2, feedPageSize, reports.StatusPending).Return(page([]string{"c"}, 2, 2), nil).Once()

	feed := NewReportFeed(m, nil)
	var changes atomic.Int32
	feed.Subscribe(func() { changes.Add(1) })

	feed.LoadOrganization(ctx, 1, reports.StatusPending)
	snap := feed.Snapshot()
	assert.Equal(t, []string{"a", "b"}, ids(snap.Reports))
	assert.True(t, snap.HasMore())

	feed.LoadMore(ctx)
	snap = feed.Snapshot()
	assert.Equal(t, []string{"a", "b", "c"}, ids(snap.Reports))
	assert.False(t, snap.HasMore())
	assert.False(t, snap.Loading)

	feed.LoadMore(ctx) // ya no hay más páginas
	m.AssertExpectations(t)
	assert.Positive(t, changes.Load())
}

func TestReportFeed_ErrorKeepsData(t *testing.T) {
	m := &mockReports{}
	ctx := context.Background()
	m.On("OrganizationAssigned", ctx, 1, feedPageSize, reports.Status("")).Return(page([]string{"a"}, 1, 1), nil).Once()
	m.On("OrganizationAssigned", ctx, 1, feedPageSize, reports.Status("")).
		Return(envelope.Paginated[reports.Report]{}, &httpclient.StatusError{StatusCode: 500}).Once()

	feed := NewReportFeed(m, nil)
	feed.LoadOrganization(ctx, 1, "")
	feed.LoadOrganization(ctx, 1, "")

	snap := feed.Snapshot()
	assert.Equal(t, []string{"a"}, ids(snap.Reports))
	assert.True(t, snap.ShowError)
	assert.Equal(t, "Error del servidor (código 500)", snap.ErrorMessage)

	feed.DismissError()
	assert.False(t, feed.Status().ShowError)
}

func TestReportFeed_VeterinarySkipsWhileLoading(t *testing.T) {
	m := &mockReports{}
	ctx := context.Background()
	release := make(chan struct{})
	entered := make(chan struct{})
	m.On("VeterinaryAssigned", ctx, 1, feedPageSize).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(page([]string{"v1"}, 1, 1), nil).Once()

	feed := NewReportFeed(m, nil)
	done := make(chan struct{})
	go func() {
		feed.LoadVeterinary(ctx, 1)
		close(done)
	}()
	<-entered

	feed.LoadVeterinary(ctx, 1) // en curso: no debe llamar al servicio
	close(release)
	<-done

	m.AssertNumberOfCalls(t, "VeterinaryAssigned", 1)
	assert.Equal(t, []string{"v1"}, ids(feed.Snapshot().Reports))
}

func TestReportFeed_VeterinaryDropsResultAfterCancel(t *testing.T) {
	m := &mockReports{}
	ctx, cancel := context.WithCancel(context.Background())
	m.On("VeterinaryAssigned", ctx, 1, feedPageSize).
		Run(func(mock.Arguments) { cancel() }).
		Return(page([]string{"late"}, 1, 1), nil).Once()

	feed := NewReportFeed(m, nil)
	feed.LoadVeterinary(ctx, 1)

	snap := feed.Snapshot()
	assert.Empty(t, snap.Reports)
	assert.False(t, snap.Loading)
	assert.False(t, snap.ShowError)
}

func TestReportDetail_UpdateThenRefetch(t *testing.T) {
	m := &mockReports{}
	ctx := context.Background()
	before := reports.Report{ID: "R1", Status: reports.StatusRescued}
	after := reports.Report{ID: "R1", Status: reports.StatusInVeterinary, StatusHistory: []reports.StatusChange{
		{Status: reports.StatusRescued}, {Status: reports.StatusInVeterinary, Notes: "ingresa"},
	}}
	m.On("Get", ctx, "R1").Return(before, nil).Once()
	m.On("UpdateStatus", ctx, "R1", reports.StatusInVeterinary, mock.MatchedBy(func(n *string) bool {
		return n != nil && *n == "ingresa"
	})).Return(nil, nil).Once()
	m.On("Get", ctx, "R1").Return(after, nil).Once()

	d := NewReportDetail(m, nil)
	d.Load(ctx, "R1")
	require.True(t, d.UpdateStatus(ctx, reports.StatusInVeterinary, "ingresa"))

	snap := d.Snapshot()
	require.NotNil(t, snap.Report)
	assert.Equal(t, reports.StatusInVeterinary, snap.Report.Status)
	assert.Len(t, snap.Report.StatusHistory, 2)
	m.AssertExpectations(t)
}

type fakeOrgs struct{ list []organizations.Organization }

func (f fakeOrgs) List(context.Context) ([]organizations.Organization, error) { return f.list, nil }

type recordingUploader struct{ names []string }

func (u *recordingUploader) Upload(_ context.Context, f media.File) (string, error) {
	u.names = append(u.names, f.Name)
	return "https://cdn/" + f.Name, nil
}

func TestCreateReportForm(t *testing.T) {
	m := &mockReports{}
	ctx := context.Background()
	orgs := fakeOrgs{list: []organizations.Organization{{ID: "o1", Name: "Uno"}, {ID: "o2", Name: "Dos"}}}
	up := &recordingUploader{}

	form := NewCreateReportForm(m, orgs, up, nil)
	assert.False(t, form.CanSubmit())
	assert.False(t, form.Submit(ctx))

	form.LoadOrganizations(ctx)
	require.NotNil(t, form.Snapshot().Selected)
	assert.Equal(t, "o1", form.Snapshot().Selected.ID.String())

	form.SetDraft(ReportDraft{Description: "corto", LocationAddress: "Calle 1"})
	assert.False(t, form.CanSubmit(), "description under 10 chars")

	form.Select("o2")
	form.SetDraft(ReportDraft{
		Description:     "Perro herido cerca del parque",
		UrgencyLevel:    reports.UrgencyHigh,
		AnimalType:      reports.AnimalDog,
		LocationAddress: "Parque Central",
		Photos:          []media.File{{Name: "1.jpg"}, {Name: "2.jpg"}},
	})
	require.True(t, form.CanSubmit())

	m.On("Create", ctx, mock.MatchedBy(func(in reports.CreateRequest) bool {
		return in.OrganizationID == "o2" &&
			assert.ObjectsAreEqual([]string{"https://cdn/1.jpg", "https://cdn/2.jpg"}, in.PhotoURLs)
	})).Return(reports.Report{ID: "new"}, nil).Once()

	require.True(t, form.Submit(ctx))
	assert.Equal(t, []string{"1.jpg", "2.jpg"}, up.names)

	snap := form.Snapshot()
	assert.True(t, snap.Submitted)
	assert.Empty(t, snap.Draft.Description)
	assert.Equal(t, "o1", snap.Selected.ID.String())
	m.AssertExpectations(t)
}

func TestCreateReportForm_PhotosWithoutUploader(t *testing.T) {
	m := &mockReports{}
	form := NewCreateReportForm(m, fakeOrgs{list: []organizations.Organization{{ID: "o1"}}}, nil, nil)
	form.LoadOrganizations(context.Background())
	form.SetDraft(ReportDraft{
		Description:     "Gato atrapado en techo",
		LocationAddress: "Av. Norte",
		Photos:          []media.File{{Name: "a.jpg"}},
	})

	assert.False(t, form.Submit(context.Background()))
	assert.True(t, form.Status().ShowError)
	m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Cargar páginas 1..n en orden deja la concatenación de todas.
func TestProperty_FeedAccumulatesPagesInOrder(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("page 1 replaces, later pages append", prop.ForAll(
		func(sizes []int) bool {
			m := &mockReports{}
			ctx := context.Background()
			var want []string
			for i, n := range sizes {
				var batch []string
				for j := 0; j < n; j++ {
					batch = append(batch, fmt.Sprintf("p%d-%d", i+1, j))
				}
				want = append(want, batch...)
				m.On("OrganizationAssigned", ctx, i+1, feedPageSize, reports.Status("")).
					Return(page(batch, i+1, len(sizes)), nil).Once()
			}

			feed := NewReportFeed(m, nil)
			feed.LoadOrganization(ctx, 1, "")
			for i := 1; i < len(sizes); i++ {
				feed.LoadMore(ctx)
			}
			got := ids(feed.Snapshot().Reports)
			if len(want) == 0 {
				return len(got) == 0
			}
			return assert.ObjectsAreEqual(want, got)
		},
		gen.SliceOfN(4, gen.IntRange(0, 5)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
