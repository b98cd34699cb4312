package handler

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/geography/domain"
	"pirate-admin/backend/internal/platform/web"
	sessiondomain "pirate-admin/backend/internal/session/domain"
	userdomain "pirate-admin/backend/internal/user/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGeography struct {
	countries      []*domain.Country
	municipalities map[uuid.UUID][]*domain.Municipality
	areas          map[uuid.UUID][]*domain.Area
	err            error
	calls          int
}

func (f *fakeGeography) GetCountries(context.Context) ([]*domain.Country, error) {
	f.calls++
	return f.countries, f.err
}

func (f *fakeGeography) GetMunicipalitiesByCountry(_ context.Context, id uuid.UUID) ([]*domain.Municipality, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]*domain.Municipality{}, f.municipalities[id]...), nil
}

func (f *fakeGeography) GetAreasByCountry(_ context.Context, id uuid.UUID) ([]*domain.Area, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]*domain.Area{}, f.areas[id]...), nil
}

type fakePermissions struct{ allow bool }

func (f fakePermissions) PermissionCheck(context.Context, *sessiondomain.Session, string) bool {
	return f.allow
}

const testTemplates = `{{define "admin/geography.html"}}` +
	`{{range .countries}}C:{{.Name}};{{end}}{{range .municipalities}}M:{{.Name}};{{end}}{{range .areas}}A:{{.Name}};{{end}}` +
	`{{end}}{{define "error/default.html"}}error {{.status}}{{end}}`

func newTestEngine(geo *fakeGeography, allow bool) *gin.Engine {
	tmpl := template.Must(template.New("").Parse(testTemplates))
	h := NewHandler(web.NewBase(zap.NewNop(), tmpl, fakePermissions{allow: allow}), geo)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(func(c *gin.Context) {
		web.SetSession(c, &sessiondomain.Session{User: &userdomain.User{ID: uuid.New()}})
	})
	r.GET("/admin/geography", h.Page)
	r.GET("/api/geography/countries", h.Countries)
	r.GET("/api/geography/countries/:id/municipalities", h.Municipalities)
	r.GET("/api/geography/countries/:id/areas", h.Areas)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func norway() (*fakeGeography, uuid.UUID) {
	no, se := uuid.New(), uuid.New()
	oslo, viken, asker := uuid.New(), uuid.New(), uuid.New()
	return &fakeGeography{
		countries: []*domain.Country{{ID: no, Name: "Norway"}, {ID: se, Name: "Sweden"}},
		municipalities: map[uuid.UUID][]*domain.Municipality{
			no: {{ID: uuid.New(), Name: "Bærum", CountryID: no}, {ID: uuid.New(), Name: "Oslo", CountryID: no}},
			se: {{ID: uuid.New(), Name: "Malmö", CountryID: se}},
		},
		areas: map[uuid.UUID][]*domain.Area{
			no: {
				{ID: asker, Name: "Asker", CountryID: no, Path: viken.String() + "." + asker.String()},
				{ID: oslo, Name: "Oslo", CountryID: no, Path: oslo.String()},
				{ID: viken, Name: "Viken", CountryID: no, Path: viken.String()},
			},
		},
	}, no
}

func TestPage(t *testing.T) {
	geo, _ := norway()
	w := get(newTestEngine(geo, true), "/admin/geography")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "C:Norway;C:Sweden;M:Bærum;M:Oslo;A:Oslo;A:Viken;A:Asker;", w.Body.String())
}

func TestPage_NoCountries(t *testing.T) {
	w := get(newTestEngine(&fakeGeography{}, true), "/admin/geography")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestPage_PermissionDeniedStops(t *testing.T) {
	geo, _ := norway()
	w := get(newTestEngine(geo, false), "/admin/geography")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "error 403", w.Body.String())
	assert.Zero(t, geo.calls, "no geography is loaded after a denial")
}

func TestPage_StorageError(t *testing.T) {
	w := get(newTestEngine(&fakeGeography{err: errors.New("timeout")}, true), "/admin/geography")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAreas_SortedByDepth(t *testing.T) {
	geo, no := norway()
	w := get(newTestEngine(geo, false), "/api/geography/countries/"+no.String()+"/areas")

	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data []domain.Area `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 3)
	assert.Equal(t, "Asker", env.Data[2].Name)
}

func TestMunicipalities(t *testing.T) {
	geo, no := norway()
	r := newTestEngine(geo, false)

	w := get(r, "/api/geography/countries/"+no.String()+"/municipalities")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Bærum"))

	assert.Equal(t, http.StatusBadRequest, get(r, "/api/geography/countries/xyz/municipalities").Code)
}

func TestCountries(t *testing.T) {
	geo, _ := norway()
	w := get(newTestEngine(geo, false), "/api/geography/countries")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sweden")
}
