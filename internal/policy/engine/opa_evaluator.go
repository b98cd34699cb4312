package engine

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
)

const allowQuery = "data.pirate.admin.allow"

// DefaultPolicy grants every privileged action to users whose local row carries the admin flag.
const DefaultPolicy = `package pirate.admin

default allow := false

allow if {
	input.user.admin == true
}
`

// OPAEvaluator evaluates admin access with an in-process OPA Rego policy.
type OPAEvaluator struct {
	policy string
	query  rego.PreparedEvalQuery
}

// NewOPAEvaluator compiles policy (DefaultPolicy when empty) and prepares the allow query.
func NewOPAEvaluator(ctx context.Context, policy string) (*OPAEvaluator, error) {
	if policy == "" {
		policy = DefaultPolicy
	}
	compiler, err := ast.CompileModules(map[string]string{"policy_0.rego": policy})
	if err != nil {
		return nil, fmt.Errorf("compile policy: %w", err)
	}
	query, err := rego.New(
		rego.Query(allowQuery),
		rego.Compiler(compiler),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare policy query: %w", err)
	}
	return &OPAEvaluator{policy: policy, query: query}, nil
}

// Allow evaluates the allow rule. An undefined or non-boolean result denies.
func (e *OPAEvaluator) Allow(ctx context.Context, in AccessInput) (bool, error) {
	rs, err := e.query.Eval(ctx, rego.EvalInput(buildInput(in)))
	if err != nil {
		return false, fmt.Errorf("eval policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false, nil
	}
	allowed, ok := rs[0].Expressions[0].Value.(bool)
	return ok && allowed, nil
}

// HealthCheck recompiles the configured policy and evaluates it against a minimal input.
// Does not touch the database. Returns nil on success.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	compiler, err := ast.CompileModules(map[string]string{"policy_0.rego": e.policy})
	if err != nil {
		return fmt.Errorf("compile policy: %w", err)
	}
	q := rego.New(
		rego.Query(allowQuery),
		rego.Compiler(compiler),
		rego.Input(buildInput(AccessInput{Action: "health"})),
	)
	rs, err := q.Eval(ctx)
	if err != nil {
		return fmt.Errorf("eval policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return fmt.Errorf("policy query returned no result")
	}
	return nil
}

func buildInput(in AccessInput) map[string]interface{} {
	return map[string]interface{}{
		"user": map[string]interface{}{
			"id":    in.UserID.String(),
			"admin": in.Admin,
		},
		"action": in.Action,
	}
}
