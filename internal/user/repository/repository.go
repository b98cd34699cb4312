package repository

import (
	"context"

	"github.com/google/uuid"

	"pirate-admin/backend/internal/user/domain"
)

// Repository defines persistence for the local user rows that enrich identity provider users.
type Repository interface {
	// GetUserInfo returns the local row for id, or nil if the user has never been seen.
	GetUserInfo(ctx context.Context, id uuid.UUID) (*domain.UserInfo, error)
	// CheckUserAdmin reports the admin flag. A user without a local row is not an admin.
	CheckUserAdmin(ctx context.Context, id uuid.UUID) (bool, error)
	ListUserInfo(ctx context.Context) ([]*domain.UserInfo, error)
	// EnsureUser creates the local row on first sight and returns it. Existing rows are left as they are.
	EnsureUser(ctx context.Context, id uuid.UUID) (*domain.UserInfo, error)
}
