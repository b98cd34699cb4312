package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"pirate-admin/backend/internal/policy/engine"
	sessiondomain "pirate-admin/backend/internal/session/domain"
	userdomain "pirate-admin/backend/internal/user/domain"
)

// mockAdminLookup implements AdminLookup for tests.
type mockAdminLookup struct {
	admins map[uuid.UUID]bool
	err    error
	calls  int
}

func (m *mockAdminLookup) CheckUserAdmin(ctx context.Context, id uuid.UUID) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	return m.admins[id], nil
}

// mockEvaluator implements engine.Evaluator for tests.
type mockEvaluator struct {
	err  error
	last engine.AccessInput
}

func (m *mockEvaluator) Allow(ctx context.Context, in engine.AccessInput) (bool, error) {
	m.last = in
	if m.err != nil {
		return false, m.err
	}
	return in.Admin, nil
}

func (m *mockEvaluator) HealthCheck(ctx context.Context) error { return nil }

func sessionFor(id uuid.UUID) *sessiondomain.Session {
	return &sessiondomain.Session{ID: uuid.New(), User: &userdomain.User{ID: id}}
}

func TestPermissionCheck_Admin(t *testing.T) {
	id := uuid.New()
	users := &mockAdminLookup{admins: map[uuid.UUID]bool{id: true}}
	ev := &mockEvaluator{}
	c := NewChecker(users, ev, nil)

	if !c.PermissionCheck(context.Background(), sessionFor(id), "organizations.create") {
		t.Fatal("admin should be allowed")
	}
	if ev.last.UserID != id || ev.last.Action != "organizations.create" || !ev.last.Admin {
		t.Errorf("policy input = %+v", ev.last)
	}
}

func TestPermissionCheck_NonAdmin(t *testing.T) {
	users := &mockAdminLookup{admins: map[uuid.UUID]bool{}}
	c := NewChecker(users, &mockEvaluator{}, nil)

	if c.PermissionCheck(context.Background(), sessionFor(uuid.New()), "geography.view") {
		t.Fatal("non-admin should be denied")
	}
}

func TestPermissionCheck_NoSession(t *testing.T) {
	users := &mockAdminLookup{}
	c := NewChecker(users, &mockEvaluator{}, nil)

	if c.PermissionCheck(context.Background(), nil, "organizations.delete") {
		t.Fatal("missing session should be denied")
	}
	if c.PermissionCheck(context.Background(), &sessiondomain.Session{}, "organizations.delete") {
		t.Fatal("session without user should be denied")
	}
	if users.calls != 0 {
		t.Errorf("lookup calls = %d, want 0", users.calls)
	}
}

func TestPermissionCheck_LookupError(t *testing.T) {
	id := uuid.New()
	users := &mockAdminLookup{admins: map[uuid.UUID]bool{id: true}, err: errors.New("db down")}
	c := NewChecker(users, &mockEvaluator{}, nil)

	if c.PermissionCheck(context.Background(), sessionFor(id), "organizations.update") {
		t.Fatal("lookup error should deny")
	}
}

func TestPermissionCheck_EvaluationError(t *testing.T) {
	id := uuid.New()
	users := &mockAdminLookup{admins: map[uuid.UUID]bool{id: true}}
	c := NewChecker(users, &mockEvaluator{err: errors.New("eval")}, nil)

	if c.PermissionCheck(context.Background(), sessionFor(id), "organizations.update") {
		t.Fatal("evaluation error should deny")
	}
}

func TestPermissionCheck_WithOPA(t *testing.T) {
	ctx := context.Background()
	ev, err := engine.NewOPAEvaluator(ctx, "")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	admin, member := uuid.New(), uuid.New()
	c := NewChecker(&mockAdminLookup{admins: map[uuid.UUID]bool{admin: true}}, ev, nil)

	if !c.PermissionCheck(ctx, sessionFor(admin), "users.view") {
		t.Error("admin should be allowed by the default policy")
	}
	if c.PermissionCheck(ctx, sessionFor(member), "users.view") {
		t.Error("member should be denied by the default policy")
	}
}
