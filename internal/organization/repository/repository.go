package repository

import (
	"context"

	"github.com/google/uuid"

	"pirate-admin/backend/internal/organization/domain"
)

// Repository defines persistence for organizations.
type Repository interface {
	// Create inserts a new organization. Returns (nil, nil) when the name is already taken.
	Create(ctx context.Context, name, description string, active bool) (*domain.Organization, error)
	// GetByID returns the organization for id, or nil if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	// GetDefault returns the configured default organization, or nil when unset or unreadable.
	GetDefault(ctx context.Context) *domain.Organization
	// GetByName returns the organization with exactly this name, or nil when absent or unreadable.
	GetByName(ctx context.Context, name string) *domain.Organization
	// List returns organizations matching search (empty matches all) in the requested order.
	List(ctx context.Context, search string, orderColumn domain.OrderColumn, ascending bool) ([]*domain.Organization, error)
	// Update replaces name, description and active. Returns (nil, nil) when the name is already taken
	// or the organization does not exist.
	Update(ctx context.Context, id uuid.UUID, name, description string, active bool) (*domain.Organization, error)
	// Delete removes memberships, clears the default setting and deletes the row, in that order and
	// without a transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MembershipRemover removes every membership of an organization (first step of Delete).
type MembershipRemover interface {
	RemoveMembershipsFromOrg(ctx context.Context, orgID uuid.UUID) error
}

// DefaultOrganizationSettings is the slice of the settings entity the organizations DAO needs.
type DefaultOrganizationSettings interface {
	GetDefaultOrganization(ctx context.Context) (*uuid.UUID, error)
	ClearDefaultOrganization(ctx context.Context, id uuid.UUID) error
}
