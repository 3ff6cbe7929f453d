package animals

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

func newService(t *testing.T, body string, seen *[]*http.Request, bodies *[]map[string]any) *Service {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = append(*seen, r)
		var m map[string]any
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &m)
		}
		*bodies = append(*bodies, m)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	c, err := httpclient.NewWithBaseURL(ts.URL, time.Second)
	require.NoError(t, err)
	return NewService(c)
}

func TestList_DefaultsToAvailable(t *testing.T) {
	var seen []*http.Request
	var bodies []map[string]any
	svc := newService(t, `{"success":true,"data":[
		{"_id":"a1","name":"Luna","species":"cat","gender":"female","size":"small","status":"available",
		 "organizationId":{"_id":"o1","organizationDetails":{"organizationName":"Patitas"}},"reportId":"r1","photoUrls":[]}
	]}`, &seen, &bodies)

	got, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "/api/animals?status=available", seen[0].URL.RequestURI())
	assert.Equal(t, "Patitas", got[0].Organization.Details.OrganizationDetails.OrganizationName)
	assert.Equal(t, "r1", got[0].Report.ID)
	assert.Nil(t, got[0].Report.Details)
	assert.Equal(t, "Hembra", got[0].Gender.Label())
}

func TestList_NullDataIsEmpty(t *testing.T) {
	var seen []*http.Request
	var bodies []map[string]any
	svc := newService(t, `{"success":true,"data":null}`, &seen, &bodies)

	got, err := svc.List(context.Background(), StatusAdopted)
	require.NoError(t, err)
	assert.Equal(t, []Animal{}, got)
	assert.Equal(t, "/api/animals?status=adopted", seen[0].URL.RequestURI())
}

func TestCreate_FromReport(t *testing.T) {
	var seen []*http.Request
	var bodies []map[string]any
	svc := newService(t, `{"success":true,"data":{"_id":"a2","name":"Toby","species":"dog","status":"available"}}`, &seen, &bodies)

	got, err := svc.Create(context.Background(), CreateRequest{
		ReportID:   "r1",
		Name:       " Toby ",
		Species:    SpeciesDog,
		HealthInfo: &HealthInfo{IsVaccinated: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "a2", got.ID.String())

	body := bodies[0]
	assert.Equal(t, http.MethodPost, seen[0].Method)
	assert.Equal(t, "Toby", body["name"])
	assert.Equal(t, "unknown", body["gender"])
	assert.Equal(t, "medium", body["size"])
	assert.Equal(t, []any{}, body["photoUrls"])
	assert.NotContains(t, body, "breed")
	assert.Equal(t, true, body["healthInfo"].(map[string]any)["isVaccinated"])

	_, err = svc.Create(context.Background(), CreateRequest{Name: "x", Species: SpeciesCat})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, seen, 1)
}
