package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/logging"
	sessiondomain "pirate-admin/backend/internal/session/domain"
)

const defaultErrorTemplate = "error/default.html"

// Envelope is the JSON body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
	Data    any    `json:"data"`
}

// PermissionChecker decides whether a session may perform a privileged action.
type PermissionChecker interface {
	PermissionCheck(ctx context.Context, session *sessiondomain.Session, action string) bool
}

// Base is embedded by every concrete handler.
type Base struct {
	Logger      *zap.Logger
	Templates   *template.Template
	Permissions PermissionChecker
}

// NewBase returns a Base. logger may be nil. templates must be the set installed on the engine.
func NewBase(logger *zap.Logger, templates *template.Template, permissions PermissionChecker) Base {
	return Base{Logger: logging.OrGlobal(logger), Templates: templates, Permissions: permissions}
}

// PermissionCheck reports whether the current session may perform action. Handlers call it
// explicitly before privileged work.
func (b *Base) PermissionCheck(c *gin.Context, action string) bool {
	if b.Permissions == nil {
		return false
	}
	return b.Permissions.PermissionCheck(c.Request.Context(), CurrentSession(c), action)
}

// CheckUUID accepts a uuid.UUID, a non-nil *uuid.UUID or a parseable string. Anything else is
// logged as a warning and rejected.
func (b *Base) CheckUUID(v any) (uuid.UUID, bool) {
	logger := logging.OrGlobal(b.Logger)
	switch id := v.(type) {
	case nil:
		logger.Warn("UUID is None")
	case uuid.UUID:
		return id, true
	case *uuid.UUID:
		if id != nil {
			return *id, true
		}
		logger.Warn("UUID is None")
	case string:
		parsed, err := uuid.Parse(id)
		if err == nil {
			return parsed, true
		}
		logger.Warn("Badly formatted UUID string: " + id)
	default:
		logger.Warn(fmt.Sprintf("UUID is wrong type: %T", v))
	}
	return uuid.Nil, false
}

// Respond writes the JSON envelope. With showErrorPage set, error statuses render the error page
// instead. 204 writes no body.
func (b *Base) Respond(c *gin.Context, message string, status int, data any, showErrorPage bool) {
	if showErrorPage && status >= http.StatusBadRequest {
		b.WriteError(c, status, message, nil)
		return
	}
	switch {
	case status >= http.StatusBadRequest:
		c.JSON(status, Envelope{Success: false, Reason: message, Data: data})
	case status == http.StatusNoContent:
		c.Status(status)
	default:
		c.JSON(status, Envelope{Success: true, Reason: message, Data: data})
	}
}

// WriteError renders error/<status>.html, or error/default.html when there is no dedicated page.
// The message is the explicit message if set, else err's text.
func (b *Base) WriteError(c *gin.Context, status int, message string, err error) {
	if message == "" && err != nil {
		message = err.Error()
	}
	data := gin.H{
		"title":   http.StatusText(status),
		"status":  status,
		"message": message,
		"session": CurrentSession(c),
	}

	name := "error/" + strconv.Itoa(status) + ".html"
	switch {
	case b.hasTemplate(name):
	case b.hasTemplate(defaultErrorTemplate):
		name = defaultErrorTemplate
	default:
		c.String(status, message)
		return
	}
	c.HTML(status, name, data)
}

// Render renders an HTML page with the current session added to data.
func (b *Base) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["session"] = CurrentSession(c)
	c.HTML(status, name, data)
}

func (b *Base) hasTemplate(name string) bool {
	return b.Templates != nil && b.Templates.Lookup(name) != nil
}
