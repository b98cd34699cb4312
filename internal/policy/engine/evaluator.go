package engine

import (
	"context"

	"github.com/google/uuid"
)

// AccessInput is the document a policy decision is made on.
type AccessInput struct {
	UserID uuid.UUID
	Admin  bool
	// Action names the privileged operation being attempted (e.g. "organizations.update").
	Action string
}

// Evaluator decides admin access using OPA or other engines.
type Evaluator interface {
	// Allow reports whether the policy grants the action to the user.
	Allow(ctx context.Context, in AccessInput) (bool, error)
	// HealthCheck verifies the engine can compile and evaluate its policy.
	HealthCheck(ctx context.Context) error
}
