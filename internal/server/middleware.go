package server

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/audit"
	"pirate-admin/backend/internal/logging"
	"pirate-admin/backend/internal/platform/web"
)

const requestIDKey = "request_id"

// RequestLogger logs each request with latency, request ID and the session user when present.
// 5xx responses log at error level, 4xx at warn.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	logger = logging.OrGlobal(logger)

	return func(c *gin.Context) {
		start := time.Now()
		requestID := strings.TrimSpace(c.Request.Header.Get("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		path := c.Request.URL.Path
		if rawQuery := c.Request.URL.RawQuery; rawQuery != "" {
			path = path + "?" + rawQuery
		}

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if s := web.CurrentSession(c); s != nil && s.User != nil {
			fields = append(fields, zap.String("user_id", s.UserID().String()))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("http_request", fields...)
		case status >= 400:
			logger.Warn("http_request", fields...)
		default:
			logger.Info("http_request", fields...)
		}
	}
}

// ClientIP stores the gin-resolved client IP on the request context for audit.ClientIPFromContext.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(audit.WithClientIP(c.Request.Context(), c.ClientIP()))
		c.Next()
	}
}

// Audit records one audit event after each audited route (see audit.Audited) served to a
// signed-in user. Recording is best-effort and never changes the response.
func Audit(logger audit.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if logger == nil || !audit.Audited(c.Request.Method, c.FullPath()) {
			return
		}
		s := web.CurrentSession(c)
		if s == nil || s.User == nil {
			return
		}
		ar := audit.ParseRoute(c.Request.Method, c.FullPath())
		logger.LogEvent(c.Request.Context(), s.UserID().String(), ar.Action, ar.Resource, auditMetadata(c))
	}
}

func auditMetadata(c *gin.Context) string {
	meta := map[string]any{"status": c.Writer.Status()}
	if id := c.Param("id"); id != "" {
		meta["id"] = id
	}
	if v, ok := c.Get(requestIDKey); ok {
		meta["request_id"] = v
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return ""
	}
	return string(b)
}
