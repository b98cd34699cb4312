package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/platform/web"
	"pirate-admin/backend/internal/user/domain"
)

// ActionView is checked against the access policy before the users page is rendered.
const ActionView = "users.view"

// UserInfoLister lists the local user rows.
type UserInfoLister interface {
	ListUserInfo(ctx context.Context) ([]*domain.UserInfo, error)
}

// Handler serves the users page and the current user endpoint.
type Handler struct {
	web.Base
	users UserInfoLister
}

// NewHandler returns a users handler.
func NewHandler(base web.Base, users UserInfoLister) *Handler {
	return &Handler{Base: base, users: users}
}

// Page renders the local user rows for admins.
func (h *Handler) Page(c *gin.Context) {
	if !h.PermissionCheck(c, ActionView) {
		h.Respond(c, "You don't have permission to view users", http.StatusForbidden, nil, true)
		return
	}
	users, err := h.users.ListUserInfo(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list users", zap.Error(err))
		h.WriteError(c, http.StatusInternalServerError, "Could not load users", err)
		return
	}
	h.Render(c, http.StatusOK, "admin/users.html", gin.H{
		"title": "Users",
		"admin": true,
		"users": users,
	})
}

// Me returns the user behind the current session.
func (h *Handler) Me(c *gin.Context) {
	s := web.CurrentSession(c)
	if s == nil || s.User == nil {
		h.Respond(c, "Not authenticated", http.StatusUnauthorized, nil, false)
		return
	}
	h.Respond(c, "Current user", http.StatusOK, s.User, false)
}
