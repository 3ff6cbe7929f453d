package adoptions

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"epaw/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	method string
	uri    string
	body   map[string]any
}

func fakeAPI(t *testing.T, status int, body string) (*Service, *[]request) {
	t.Helper()
	seen := &[]request{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := request{method: r.Method, uri: r.URL.RequestURI()}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &req.body)
		}
		*seen = append(*seen, req)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	c, err := httpclient.NewWithBaseURL(ts.URL, time.Second)
	require.NoError(t, err)
	return NewService(c), seen
}

func ptr(s string) *string { return &s }

func TestUpdateStatus_Approve(t *testing.T) {
	svc, seen := fakeAPI(t, http.StatusOK, `{"success":true,"data":{
		"_id":"A1","animalId":{"_id":"an1","name":"Luna"},"adopterId":"u1",
		"status":"approved","reviewNotes":"ok"}}`)

	got, err := svc.UpdateStatus(context.Background(), "A1", StatusApproved, ptr("ok"), nil)
	require.NoError(t, err)

	req := (*seen)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/api/adoptions/A1/status", req.uri)
	assert.Equal(t, map[string]any{"status": "approved", "reviewNotes": "ok"}, req.body)

	assert.Equal(t, StatusApproved, got.Status)
	assert.Equal(t, "Luna", got.Animal.Details.Name)
	assert.Equal(t, "u1", got.Adopter.ID)
	assert.Nil(t, got.Adopter.Details)
}

func TestUpdateStatus_NullDataSurfacesMessage(t *testing.T) {
	svc, _ := fakeAPI(t, http.StatusOK, `{"success":false,"data":null,"message":"La solicitud ya fue procesada"}`)

	_, err := svc.UpdateStatus(context.Background(), "A1", StatusApproved, nil, nil)
	require.Error(t, err)

	var me *httpclient.MessageError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "La solicitud ya fue procesada", me.Message)
	assert.Equal(t, "La solicitud ya fue procesada", httpclient.Describe(err))
}

func TestCancel_AlwaysForwarded(t *testing.T) {
	svc, seen := fakeAPI(t, http.StatusBadRequest, `{"success":false,"message":"La solicitud ya está cancelada"}`)
	ctx := context.Background()

	_, err1 := svc.Cancel(ctx, "A1")
	_, err2 := svc.Cancel(ctx, "A1")

	require.Len(t, *seen, 2, "each cancel hits the server")
	for _, r := range *seen {
		assert.Equal(t, http.MethodPut, r.method)
		assert.Equal(t, "/api/adoptions/A1/cancel", r.uri)
		assert.Nil(t, r.body)
	}
	assert.Equal(t, 400, httpclient.StatusCode(err1))
	assert.Equal(t, httpclient.Describe(err1), httpclient.Describe(err2))
	assert.Equal(t, "La solicitud ya está cancelada", httpclient.Describe(err2))
}

func TestSubmit(t *testing.T) {
	svc, seen := fakeAPI(t, http.StatusCreated, `{"success":true,"data":{"_id":"A9","animalId":"an1","status":"pending"}}`)

	got, err := svc.Submit(context.Background(), "an1", " Tengo patio grande ", AdopterInfo{HasYard: true, HouseholdMembers: 3})
	require.NoError(t, err)
	assert.Equal(t, "A9", got.ID.String())
	assert.Equal(t, StatusPending, got.Status)

	body := (*seen)[0].body
	assert.Equal(t, "/api/adoptions", (*seen)[0].uri)
	assert.Equal(t, "an1", body["animalId"])
	assert.Equal(t, "Tengo patio grande", body["applicationMessage"])
	info := body["adopterInfo"].(map[string]any)
	assert.Equal(t, "other", info["homeType"])
	assert.Equal(t, true, info["hasYard"])
	assert.NotContains(t, info, "workSchedule")

	_, err = svc.Submit(context.Background(), "", "hola", AdopterInfo{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListRoutes(t *testing.T) {
	svc, seen := fakeAPI(t, http.StatusOK, `{"success":true,"data":[]}`)
	ctx := context.Background()

	_, err := svc.MyApplications(ctx, 0, 0, "")
	require.NoError(t, err)
	_, err = svc.ForOrganization(ctx, "org 1", 2, 0, StatusUnderReview)
	require.NoError(t, err)
	_, err = svc.ForAnimal(ctx, "an1")
	require.NoError(t, err)
	_, err = svc.Get(ctx, "A1")
	require.Error(t, err, "empty array is not an adoption")

	assert.Equal(t, "/api/adoptions/my-applications?limit=10&page=1", (*seen)[0].uri)
	assert.Equal(t, "/api/adoptions/organization/org%201?limit=20&page=2&status=under_review", (*seen)[1].uri)
	assert.Equal(t, "/api/adoptions/animal/an1", (*seen)[2].uri)
	assert.Equal(t, "/api/adoptions/A1", (*seen)[3].uri)
}

func TestAvailableActions(t *testing.T) {
	org := Viewer{IsOrganization: true}
	applicant := Viewer{IsApplicant: true}

	assert.Equal(t, []Action{ActionApprove, ActionReject}, AvailableActions(StatusPending, org))
	assert.Equal(t, []Action{ActionApprove, ActionReject}, AvailableActions(StatusUnderReview, org))
	assert.Equal(t, []Action{ActionComplete}, AvailableActions(StatusApproved, org))
	assert.Empty(t, AvailableActions(StatusCompleted, org))
	assert.Equal(t, []Action{ActionCancel}, AvailableActions(StatusPending, applicant))
	assert.Empty(t, AvailableActions(StatusApproved, applicant))
	assert.Equal(t, StatusCancelled, ActionCancel.Target())
	assert.True(t, StatusRejected.IsFinal())
	assert.Equal(t, "En Revisión", StatusUnderReview.Label())
}
