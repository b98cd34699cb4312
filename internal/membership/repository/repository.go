package repository

import (
	"context"

	"github.com/google/uuid"

	"pirate-admin/backend/internal/membership/domain"
)

// Repository defines persistence for organization memberships.
type Repository interface {
	ListMembersByOrg(ctx context.Context, orgID uuid.UUID) ([]*domain.Membership, error)
	AddMember(ctx context.Context, userID, orgID uuid.UUID) error
	// RemoveMembershipsFromOrg deletes every membership of the organization.
	RemoveMembershipsFromOrg(ctx context.Context, orgID uuid.UUID) error
}
