package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pirate-admin/backend/internal/platform/web"
)

// Handler serves session endpoints.
type Handler struct {
	web.Base
}

// NewHandler returns a session handler.
func NewHandler(base web.Base) *Handler {
	return &Handler{Base: base}
}

// Logout clears the session cookie and sends the browser to the identity provider's logout URL,
// or to / when the session carries none.
func (h *Handler) Logout(c *gin.Context) {
	target := "/"
	if s := web.CurrentSession(c); s != nil && s.LogoutURL != "" {
		target = s.LogoutURL
	}
	web.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, target)
}
