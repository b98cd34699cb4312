package handler

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/platform/web"
	sessiondomain "pirate-admin/backend/internal/session/domain"
	"pirate-admin/backend/internal/user/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers struct {
	rows []*domain.UserInfo
	err  error
}

func (f *fakeUsers) ListUserInfo(context.Context) ([]*domain.UserInfo, error) {
	return f.rows, f.err
}

type fakePermissions struct{ allow bool }

func (f fakePermissions) PermissionCheck(context.Context, *sessiondomain.Session, string) bool {
	return f.allow
}

const testTemplates = `{{define "admin/users.html"}}{{range .users}}#{{.Number}};{{end}}{{end}}` +
	`{{define "error/default.html"}}error {{.status}}{{end}}`

func newTestEngine(users *fakeUsers, allow bool, session *sessiondomain.Session) *gin.Engine {
	tmpl := template.Must(template.New("").Parse(testTemplates))
	h := NewHandler(web.NewBase(zap.NewNop(), tmpl, fakePermissions{allow: allow}), users)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(func(c *gin.Context) {
		if session != nil {
			web.SetSession(c, session)
		}
	})
	r.GET("/admin/users", h.Page)
	r.GET("/api/users/me", h.Me)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPage(t *testing.T) {
	one, two := int64(1), int64(2)
	users := &fakeUsers{rows: []*domain.UserInfo{
		{ID: uuid.New(), Created: time.Now(), Number: &one},
		{ID: uuid.New(), Created: time.Now(), Number: &two, Admin: true},
	}}

	w := get(newTestEngine(users, true, nil), "/admin/users")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "#1;#2;", w.Body.String())
}

func TestPage_Forbidden(t *testing.T) {
	w := get(newTestEngine(&fakeUsers{}, false, nil), "/admin/users")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "error 403", w.Body.String())
}

func TestPage_StorageError(t *testing.T) {
	w := get(newTestEngine(&fakeUsers{err: errors.New("timeout")}, true, nil), "/admin/users")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMe(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Name: domain.Name{First: "Kari", Last: "Nordmann"}, Email: "kari@example.com"}
	w := get(newTestEngine(&fakeUsers{}, false, &sessiondomain.Session{User: user}), "/api/users/me")

	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Success bool        `json:"success"`
		Data    domain.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, user.ID, env.Data.ID)
	assert.Equal(t, "Kari", env.Data.Name.First)
	assert.Nil(t, env.Data.Number)
}

func TestMe_NoSession(t *testing.T) {
	w := get(newTestEngine(&fakeUsers{}, false, nil), "/api/users/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
