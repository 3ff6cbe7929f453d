package veterinaries

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"epaw/internal/domain/users"
	"epaw/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T, body string) (*Service, *[]string) {
	t.Helper()
	var uris []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uris = append(uris, r.URL.RequestURI())
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	c, err := httpclient.NewWithBaseURL(ts.URL, time.Second)
	require.NoError(t, err)
	return NewService(c), &uris
}

const pageJSON = `{"success":true,"data":{
	"data":[{"id":"v1","name":"Dra. Pérez","email":"vet@x.com","veterinaryDetails":{"clinicName":"Clínica Central","specialties":["cirugía"]}}],
	"pagination":{"currentPage":1,"totalPages":2,"totalItems":11,"itemsPerPage":10,"hasNextPage":true}
}}`

func TestList_NestedPage(t *testing.T) {
	svc, uris := fakeAPI(t, pageJSON)

	p, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "/api/veterinaries?limit=10&page=1", (*uris)[0])
	require.Len(t, p.Veterinaries, 1)
	assert.Equal(t, "Clínica Central", p.Veterinaries[0].DisplayName())
	require.NotNil(t, p.Pagination)
	assert.True(t, p.Pagination.HasNextPage)
}

func TestSearchBySpecialty_EncodesQuery(t *testing.T) {
	svc, uris := fakeAPI(t, pageJSON)

	_, err := svc.SearchBySpecialty(context.Background(), "medicina interna", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "/api/veterinaries/search?limit=5&page=2&specialty=medicina+interna", (*uris)[0])

	_, err = svc.SearchBySpecialty(context.Background(), "  ", 1, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNearby_DefaultDistance(t *testing.T) {
	svc, uris := fakeAPI(t, `{"success":true,"data":[{"id":"v1","name":"Vet","email":"v@x.com"}]}`)

	got, err := svc.Nearby(context.Background(), 13.69, -89.19, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Vet", got[0].DisplayName())
	assert.Equal(t, "/api/veterinaries/nearby?latitude=13.69&longitude=-89.19&maxDistance=20000", (*uris)[0])
}

func TestGet_ReturnsUser(t *testing.T) {
	svc, _ := fakeAPI(t, `{"success":true,"data":{"_id":"v1","email":"v@x.com","name":"Vet","role":"veterinary",
		"veterinaryDetails":{"clinicName":"Huellitas","rating":4.5}}}`)

	u, err := svc.Get(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "v1", u.ID.String())
	assert.Equal(t, users.RoleVeterinary, u.Role)
	assert.Equal(t, "Huellitas", u.DisplayName())
}

func TestGet_NullDataIsError(t *testing.T) {
	svc, _ := fakeAPI(t, `{"success":true,"data":null}`)

	_, err := svc.Get(context.Background(), "v1")
	assert.ErrorIs(t, err, httpclient.ErrNoData)
}
