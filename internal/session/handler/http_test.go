package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/platform/web"
	sessiondomain "pirate-admin/backend/internal/session/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLogout(t *testing.T) {
	testCases := []struct {
		name    string
		session *sessiondomain.Session
		want    string
	}{
		{"provider logout url", &sessiondomain.Session{LogoutURL: "http://kratos/self-service/logout?token=t"}, "http://kratos/self-service/logout?token=t"},
		{"no logout url", &sessiondomain.Session{}, "/"},
		{"no session", nil, "/"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(web.NewBase(zap.NewNop(), nil, nil))
			r := gin.New()
			r.GET("/logout", func(c *gin.Context) {
				if tc.session != nil {
					web.SetSession(c, tc.session)
				}
			}, h.Logout)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, tc.want, w.Header().Get("Location"))
			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, "ory_kratos_session", cookies[0].Name)
			assert.Equal(t, "", cookies[0].Value)
		})
	}
}
