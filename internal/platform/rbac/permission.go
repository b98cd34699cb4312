// Package rbac answers "may the current session perform this privileged operation".
package rbac

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/logging"
	"pirate-admin/backend/internal/policy/engine"
	sessiondomain "pirate-admin/backend/internal/session/domain"
)

// AdminLookup returns the local admin flag for a user. Used by Checker to build the policy input.
type AdminLookup interface {
	CheckUserAdmin(ctx context.Context, id uuid.UUID) (bool, error)
}

// Checker combines the local admin flag with the access policy.
type Checker struct {
	users     AdminLookup
	evaluator engine.Evaluator
	logger    *zap.Logger
}

// NewChecker returns a Checker. logger may be nil.
func NewChecker(users AdminLookup, evaluator engine.Evaluator, logger *zap.Logger) *Checker {
	return &Checker{users: users, evaluator: evaluator, logger: logging.OrGlobal(logger).Named("rbac")}
}

// PermissionCheck reports whether session may perform action. No session, a failed lookup or a
// failed evaluation all deny.
func (c *Checker) PermissionCheck(ctx context.Context, session *sessiondomain.Session, action string) bool {
	userID := session.UserID()
	if userID == uuid.Nil {
		return false
	}
	admin, err := c.users.CheckUserAdmin(ctx, userID)
	if err != nil {
		c.logger.Error("failed to look up admin flag", zap.Stringer("user_id", userID), zap.Error(err))
		return false
	}
	allowed, err := c.evaluator.Allow(ctx, engine.AccessInput{UserID: userID, Admin: admin, Action: action})
	if err != nil {
		c.logger.Error("policy evaluation failed", zap.Stringer("user_id", userID), zap.String("action", action), zap.Error(err))
		return false
	}
	return allowed
}
