package repository

import (
	"context"

	"github.com/google/uuid"

	"pirate-admin/backend/internal/platformsettings/domain"
)

// Repository reads and writes the single global settings row.
type Repository interface {
	// Get returns the settings row.
	Get(ctx context.Context) (*domain.Settings, error)
	// GetDefaultOrganization returns the configured default organization id, or nil when unset.
	GetDefaultOrganization(ctx context.Context) (*uuid.UUID, error)
	// SetDefaultOrganization points the default organization at id.
	SetDefaultOrganization(ctx context.Context, id uuid.UUID) error
	// ClearDefaultOrganization unsets the default organization only if it currently equals id.
	ClearDefaultOrganization(ctx context.Context, id uuid.UUID) error
}
