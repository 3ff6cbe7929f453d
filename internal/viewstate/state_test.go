package viewstate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"epaw/internal/adapters/session/memory"
	"epaw/internal/domain/adoptions"
	"epaw/internal/domain/animals"
	"epaw/internal/domain/auth"
	"epaw/internal/domain/medicalrecords"
	"epaw/internal/domain/organizations"
	"epaw/internal/domain/shared"
	"epaw/internal/domain/users"
	"epaw/internal/domain/veterinaries"
	"epaw/internal/platform/envelope"
	"epaw/internal/platform/httpclient"
	"epaw/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// routes responde por "METHOD path"; lo que no está da 404 con envelope de error.
func routes(t *testing.T, table map[string]string) *httpclient.Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := table[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"message":"Ruta no encontrada"}`))
			return
		}
		if strings.HasPrefix(body, "401:") {
			w.WriteHeader(http.StatusUnauthorized)
			body = strings.TrimPrefix(body, "401:")
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	c, err := httpclient.NewWithBaseURL(ts.URL, time.Second)
	require.NoError(t, err)
	return c
}

func TestAuthState_LoginAndFetchFailureLogsOut(t *testing.T) {
	c := routes(t, map[string]string{
		"POST /api/auth/login": `{"success":true,"data":{"token":"tok","user":{"id":"u1","email":"a@b.com","name":"Ana","role":"organization"}}}`,
		"GET /api/auth/me":     `401:{"success":false,"message":"Token inválido"}`,
	})
	store := memory.NewStore()
	core, logs := observer.New(zap.WarnLevel)
	log := logger.FromZap(zap.New(core))

	st := NewAuthState(auth.NewService(c.WithTokens(store), store, log), log)
	assert.False(t, st.Snapshot().Authenticated)

	require.True(t, st.Login(context.Background(), "a@b.com", "secret"))
	snap := st.Snapshot()
	assert.True(t, snap.Authenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "Ana", snap.User.Name)
	assert.True(t, store.IsActive())

	st.FetchCurrentUser(context.Background())
	snap = st.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.Nil(t, snap.User)
	assert.False(t, store.IsActive())
	assert.Equal(t, 1, logs.FilterMessage("current user failed, logging out").Len())
}

func TestAuthState_RestoresFromStore(t *testing.T) {
	c := routes(t, map[string]string{})
	store := memory.NewStore()
	require.NoError(t, store.Save("persisted"))

	st := NewAuthState(auth.NewService(c, store, nil), nil)
	assert.True(t, st.Snapshot().Authenticated)
}

func TestAuthState_LoginFailureShowsServerMessage(t *testing.T) {
	c := routes(t, map[string]string{
		"POST /api/auth/login": `401:{"success":false,"message":"Credenciales inválidas"}`,
	})
	store := memory.NewStore()
	st := NewAuthState(auth.NewService(c, store, nil), nil)

	assert.False(t, st.Login(context.Background(), "a@b.com", "bad"))
	snap := st.Snapshot()
	assert.Equal(t, "Credenciales inválidas", snap.ErrorMessage)
	assert.True(t, snap.ShowError)
	assert.False(t, snap.Loading)
	assert.False(t, store.IsActive())
}

func TestAdoptionBoard_ApproveReplacesItem(t *testing.T) {
	c := routes(t, map[string]string{
		"GET /api/adoptions/organization/o1": `{"success":true,"data":[{"_id":"A1","status":"pending"},{"_id":"A2","status":"under_review"}],
			"pagination":{"currentPage":1,"totalPages":1,"totalItems":2,"itemsPerPage":20}}`,
		"PUT /api/adoptions/A1/status": `{"success":true,"data":{"_id":"A1","status":"approved","reviewNotes":"ok"}}`,
		"PUT /api/adoptions/A2/cancel": `{"success":false,"message":"No puedes cancelar esta solicitud"}`,
	})
	board := NewAdoptionBoard(adoptions.NewService(c), nil)
	ctx := context.Background()

	board.LoadOrganization(ctx, "o1", 1, "")
	require.Len(t, board.Snapshot().Applications, 2)

	require.True(t, board.Approve(ctx, "A1", "ok"))
	snap := board.Snapshot()
	assert.Equal(t, adoptions.StatusApproved, snap.Applications[0].Status)
	assert.Equal(t, adoptions.StatusUnderReview, snap.Applications[1].Status)

	assert.False(t, board.Cancel(ctx, "A2"))
	assert.Equal(t, "No puedes cancelar esta solicitud", board.Status().ErrorMessage)
	assert.Len(t, board.Snapshot().Applications, 2)
}

func TestVeterinaryCases_UpdateCase(t *testing.T) {
	c := routes(t, map[string]string{
		"GET /api/medical-records/my-cases": `{"success":true,"data":[{"_id":"m1","status":"scheduled","visitType":"checkup"}]}`,
		"PUT /api/medical-records/m1":       `{"success":true,"data":{"_id":"m1","status":"completed","visitType":"checkup","actualCost":40}}`,
	})
	cases := NewVeterinaryCases(medicalrecords.NewService(c), nil)
	ctx := context.Background()

	cases.Load(ctx, 1, "")
	require.Len(t, cases.Snapshot().Cases, 1)

	done := medicalrecords.StatusCompleted
	require.True(t, cases.UpdateCase(ctx, "m1", medicalrecords.UpdateRequest{Status: &done}))
	got := cases.Snapshot().Cases[0]
	assert.Equal(t, medicalrecords.StatusCompleted, got.Status)
	require.NotNil(t, got.ActualCost)

	assert.True(t, cases.UpdateCase(ctx, "m1", medicalrecords.UpdateRequest{}), "empty update is a no-op")
}

func TestVeterinaryDirectory_EmptySearchFallsBackToList(t *testing.T) {
	c := routes(t, map[string]string{
		"GET /api/veterinaries": `{"success":true,"data":{"data":[{"id":"v1","name":"Vet Uno","email":"a@x.com"}],
			"pagination":{"currentPage":1,"totalPages":3,"totalItems":21,"itemsPerPage":10}}}`,
		"GET /api/veterinaries/search": `{"success":true,"data":{"data":[{"id":"v2","name":"Vet Dos","email":"b@x.com"}]}}`,
	})
	dir := NewVeterinaryDirectory(veterinaries.NewService(c), nil)
	ctx := context.Background()

	dir.Search(ctx, "  ", 1)
	snap := dir.Snapshot()
	require.Len(t, snap.Veterinaries, 1)
	assert.Equal(t, "v1", snap.Veterinaries[0].ID.String())
	assert.Equal(t, 3, snap.TotalPages)

	dir.Search(ctx, "cirugía", 1)
	snap = dir.Snapshot()
	require.Len(t, snap.Veterinaries, 1)
	assert.Equal(t, "v2", snap.Veterinaries[0].ID.String())
	assert.Equal(t, 1, snap.TotalPages)
}

type pagedDirectory struct {
	pages map[int]veterinaries.Veterinary
}

func (p pagedDirectory) List(_ context.Context, page, _ int) (veterinaries.Page, error) {
	return veterinaries.Page{
		Veterinaries: []veterinaries.Veterinary{p.pages[page]},
		Pagination:   &envelope.Pagination{CurrentPage: page, TotalPages: len(p.pages)},
	}, nil
}

func (p pagedDirectory) SearchBySpecialty(ctx context.Context, _ string, page, limit int) (veterinaries.Page, error) {
	return p.List(ctx, page, limit)
}

func (p pagedDirectory) Nearby(context.Context, float64, float64, int) ([]veterinaries.Veterinary, error) {
	return []veterinaries.Veterinary{{ID: "cerca", Name: "Vet Cerca"}}, nil
}

func (p pagedDirectory) Get(_ context.Context, id string) (users.User, error) {
	return users.User{ID: shared.ID(id), Name: "Vet " + id}, nil
}

func TestVeterinaryDirectory_PagesAccumulate(t *testing.T) {
	dir := NewVeterinaryDirectory(pagedDirectory{pages: map[int]veterinaries.Veterinary{
		1: {ID: "v1", Name: "Vet Uno"},
		2: {ID: "v2", Name: "Vet Dos"},
	}}, nil)
	ctx := context.Background()

	dir.Load(ctx, 1)
	dir.Load(ctx, 2)
	snap := dir.Snapshot()
	require.Len(t, snap.Veterinaries, 2)
	assert.Equal(t, "v1", snap.Veterinaries[0].ID.String())
	assert.Equal(t, "v2", snap.Veterinaries[1].ID.String())
	assert.Equal(t, 2, snap.CurrentPage)

	dir.Search(ctx, "cirugía", 1)
	dir.Search(ctx, "cirugía", 2)
	assert.Len(t, dir.Snapshot().Veterinaries, 2)

	dir.Load(ctx, 1)
	require.Len(t, dir.Snapshot().Veterinaries, 1, "page 1 replaces")

	dir.Nearby(ctx, -12.05, -77.04, 0)
	snap = dir.Snapshot()
	require.Len(t, snap.Veterinaries, 1)
	assert.Equal(t, "cerca", snap.Veterinaries[0].ID.String())
}

func TestOrganizationDashboard(t *testing.T) {
	c := routes(t, map[string]string{
		"GET /api/organizations/o1/stats": `{"success":true,"data":{"reports":{"total":3},"animals":{"total":1,"available":1},"recent":{"reports":[],"animals":[]}}}`,
		"GET /api/animals":                `{"success":true,"data":[{"_id":"an1","name":"Luna","status":"available"}]}`,
	})
	dash := NewOrganizationDashboard(organizations.NewService(c), animals.NewService(c), nil)

	dash.Load(context.Background(), "o1", "")
	snap := dash.Snapshot()
	require.NotNil(t, snap.Stats)
	assert.Equal(t, 3, snap.Stats.Reports.Total)
	require.Len(t, snap.Animals, 1)
	assert.Equal(t, "Luna", snap.Animals[0].Name)

	dash.Load(context.Background(), "missing", "")
	snap = dash.Snapshot()
	assert.Equal(t, "Ruta no encontrada", snap.ErrorMessage)
	assert.Equal(t, 3, snap.Stats.Reports.Total, "previous data kept on error")
}

func TestAuthState_UpdateProfile(t *testing.T) {
	c := routes(t, map[string]string{
		"POST /api/auth/login":  `{"success":true,"data":{"token":"tok","user":{"id":"u1","email":"a@b.com","name":"Ana","role":"organization"}}}`,
		"PUT /api/auth/profile": `{"success":true,"data":{"id":"u1","email":"a@b.com","name":"Ana María","role":"organization","phone":"555"}}`,
	})
	store := memory.NewStore()
	st := NewAuthState(auth.NewService(c.WithTokens(store), store, nil), nil)
	ctx := context.Background()
	require.True(t, st.Login(ctx, "a@b.com", "secret"))

	name, phone := "Ana María", "555"
	require.True(t, st.UpdateProfile(ctx, auth.UpdateProfileRequest{Name: &name, Phone: &phone}))
	snap := st.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "Ana María", snap.User.Name)
	assert.False(t, snap.Loading)
}

func TestAdoptionBoard_ApplyOpenAndAnimal(t *testing.T) {
	c := routes(t, map[string]string{
		"POST /api/adoptions":           `{"success":true,"data":{"_id":"A9","status":"pending","applicationMessage":"Quiero adoptar"}}`,
		"GET /api/adoptions/A9":         `{"success":true,"data":{"_id":"A9","status":"under_review","applicationMessage":"Quiero adoptar"}}`,
		"GET /api/adoptions/animal/an1": `{"success":true,"data":[{"_id":"A9","status":"under_review"},{"_id":"A3","status":"rejected"}]}`,
	})
	board := NewAdoptionBoard(adoptions.NewService(c), nil)
	ctx := context.Background()

	assert.False(t, board.Apply(ctx, "an1", "  ", adoptions.AdopterInfo{}))
	assert.Equal(t, "Faltan datos requeridos o son inválidos", board.Status().ErrorMessage)

	require.True(t, board.Apply(ctx, "an1", "Quiero adoptar", adoptions.AdopterInfo{HouseholdMembers: 2}))
	snap := board.Snapshot()
	require.Len(t, snap.Applications, 1)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, adoptions.StatusPending, snap.Selected.Status)
	assert.Empty(t, snap.ErrorMessage)

	require.True(t, board.Open(ctx, "A9"))
	snap = board.Snapshot()
	assert.Equal(t, adoptions.StatusUnderReview, snap.Selected.Status)
	assert.Equal(t, adoptions.StatusUnderReview, snap.Applications[0].Status)

	board.LoadAnimal(ctx, "an1")
	snap = board.Snapshot()
	assert.Len(t, snap.Applications, 2)
	assert.Equal(t, 1, snap.TotalPages)
	assert.False(t, snap.Loading)
}

func TestVeterinaryCases_CreateCase(t *testing.T) {
	c := routes(t, map[string]string{
		"GET /api/medical-records/my-cases": `{"success":true,"data":[{"_id":"m1","status":"scheduled","visitType":"checkup"}]}`,
		"POST /api/medical-records":         `{"success":true,"data":{"_id":"m2","status":"in_progress","visitType":"emergency","diagnosis":"Fractura"}}`,
	})
	cases := NewVeterinaryCases(medicalrecords.NewService(c), nil)
	ctx := context.Background()
	cases.Load(ctx, 1, "")

	assert.False(t, cases.CreateCase(ctx, medicalrecords.CreateRequest{VisitType: medicalrecords.VisitEmergency}))
	require.Len(t, cases.Snapshot().Cases, 1)

	require.True(t, cases.CreateCase(ctx, medicalrecords.CreateRequest{
		AnimalID:  "an1",
		VisitType: medicalrecords.VisitEmergency,
		Diagnosis: "Fractura",
		Treatment: "Yeso",
	}))
	got := cases.Snapshot().Cases
	require.Len(t, got, 2)
	assert.Equal(t, "Fractura", got[0].Diagnosis)
}

func TestMedicalHistory_LoadAndOpen(t *testing.T) {
	c := routes(t, map[string]string{
		"GET /api/medical-records/animal/an1": `{"success":true,"data":[{"_id":"m1","visitType":"initial_exam"},{"_id":"m2","visitType":"follow_up"}]}`,
		"GET /api/medical-records/animal/an2": `{"success":true,"data":null}`,
		"GET /api/medical-records/m2":         `{"success":true,"data":{"_id":"m2","visitType":"follow_up","treatment":"Reposo"}}`,
	})
	h := NewMedicalHistory(medicalrecords.NewService(c), nil)
	ctx := context.Background()

	h.Load(ctx, "an1")
	require.Len(t, h.Snapshot().Records, 2)

	h.Open(ctx, "m2")
	snap := h.Snapshot()
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "Reposo", snap.Selected.Treatment)

	h.Load(ctx, "an2")
	snap = h.Snapshot()
	assert.Empty(t, snap.Records)
	assert.Empty(t, snap.ErrorMessage)

	h.Open(ctx, "nada")
	assert.Equal(t, "Ruta no encontrada", h.Status().ErrorMessage)
}

func TestVeterinaryDirectory_Open(t *testing.T) {
	dir := NewVeterinaryDirectory(pagedDirectory{}, nil)
	dir.Open(context.Background(), "v7")
	snap := dir.Snapshot()
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "Vet v7", snap.Selected.Name)
	assert.Empty(t, snap.Veterinaries)
}

func TestOrganizationDashboard_CreateAnimal(t *testing.T) {
	c := routes(t, map[string]string{
		"GET /api/organizations/o1/stats": `{"success":true,"data":{"reports":{"total":1},"animals":{"total":1,"available":0},"recent":{"reports":[],"animals":[]}}}`,
		"GET /api/animals":                `{"success":true,"data":[{"_id":"an1","name":"Luna","status":"adopted"}]}`,
		"POST /api/animals":               `{"success":true,"data":{"_id":"an2","name":"Toby","status":"available"}}`,
	})
	dash := NewOrganizationDashboard(organizations.NewService(c), animals.NewService(c), nil)
	ctx := context.Background()
	dash.Load(ctx, "o1", "")

	assert.False(t, dash.CreateAnimal(ctx, animals.CreateRequest{Name: "Toby", Species: animals.SpeciesDog}), "report id required")

	require.True(t, dash.CreateAnimal(ctx, animals.CreateRequest{ReportID: "r1", Name: "Toby", Species: animals.SpeciesDog}))
	snap := dash.Snapshot()
	require.Len(t, snap.Animals, 2)
	assert.Equal(t, "Toby", snap.Animals[0].Name)
	assert.Equal(t, 2, snap.Stats.Animals.Total)
	assert.Equal(t, 1, snap.Stats.Animals.Available)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	var s state
	s.setup(nil, "test")
	calls := 0
	stop := s.Subscribe(func() { calls++ })

	s.start()
	s.done()
	stop()
	s.start()

	assert.Equal(t, 2, calls)
}
