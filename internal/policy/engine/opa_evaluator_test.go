package engine

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestOPAEvaluator_HealthCheck(t *testing.T) {
	ctx := context.Background()
	e, err := NewOPAEvaluator(ctx, "")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	if err := e.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

func TestOPAEvaluator_DefaultPolicy(t *testing.T) {
	ctx := context.Background()
	e, err := NewOPAEvaluator(ctx, "")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}

	testCases := []struct {
		name  string
		admin bool
		want  bool
	}{
		{"admin allowed", true, true},
		{"member denied", false, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Allow(ctx, AccessInput{UserID: uuid.New(), Admin: tc.admin, Action: "organizations.update"})
			if err != nil {
				t.Fatalf("Allow: %v", err)
			}
			if got != tc.want {
				t.Errorf("Allow = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOPAEvaluator_CustomPolicy(t *testing.T) {
	ctx := context.Background()
	// Admins may do anything except delete.
	policy := `package pirate.admin

default allow := false

allow if {
	input.user.admin
	input.action != "organizations.delete"
}
`
	e, err := NewOPAEvaluator(ctx, policy)
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}

	ok, err := e.Allow(ctx, AccessInput{Admin: true, Action: "organizations.update"})
	if err != nil || !ok {
		t.Errorf("update: allow = %v, err = %v; want true, nil", ok, err)
	}
	ok, err = e.Allow(ctx, AccessInput{Admin: true, Action: "organizations.delete"})
	if err != nil || ok {
		t.Errorf("delete: allow = %v, err = %v; want false, nil", ok, err)
	}
}

func TestOPAEvaluator_UndefinedRuleDenies(t *testing.T) {
	ctx := context.Background()
	e, err := NewOPAEvaluator(ctx, "package pirate.admin\n\nother := true\n")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	ok, err := e.Allow(ctx, AccessInput{Admin: true})
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if ok {
		t.Error("undefined allow rule must deny")
	}
	if err := e.HealthCheck(ctx); err == nil {
		t.Error("HealthCheck should fail when the allow rule is undefined")
	}
}

func TestNewOPAEvaluator_InvalidPolicy(t *testing.T) {
	if _, err := NewOPAEvaluator(context.Background(), "package pirate.admin\nallow if {"); err == nil {
		t.Fatal("expected compile error")
	}
}
