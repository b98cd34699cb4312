// Package handler serves liveness and readiness probes.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/logging"
)

const readyTimeout = 2 * time.Second

// Pinger checks database connectivity. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PolicyChecker verifies the access policy compiles and evaluates.
type PolicyChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler serves /healthz and /readyz.
type Handler struct {
	db     Pinger
	policy PolicyChecker
	logger *zap.Logger
}

// NewHandler returns a health handler. db and policy may be nil; their checks are then skipped.
func NewHandler(db Pinger, policy PolicyChecker, logger *zap.Logger) *Handler {
	return &Handler{db: db, policy: policy, logger: logging.OrGlobal(logger)}
}

// Live always reports ok while the process serves requests.
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports ok when the database answers and the policy evaluates; 503 otherwise.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	checks := gin.H{}
	ready := true
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("readiness: database ping failed", zap.Error(err))
			checks["database"] = "unavailable"
			ready = false
		} else {
			checks["database"] = "ok"
		}
	}
	if h.policy != nil {
		if err := h.policy.HealthCheck(ctx); err != nil {
			h.logger.Warn("readiness: policy check failed", zap.Error(err))
			checks["policy"] = "unavailable"
			ready = false
		} else {
			checks["policy"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}
