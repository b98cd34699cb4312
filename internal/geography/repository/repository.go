package repository

import (
	"context"

	"github.com/google/uuid"

	"pirate-admin/backend/internal/geography/domain"
)

// Repository defines read access to the geography reference data. Every list is ordered by name.
type Repository interface {
	GetCountries(ctx context.Context) ([]*domain.Country, error)
	GetMunicipalitiesByCountry(ctx context.Context, countryID uuid.UUID) ([]*domain.Municipality, error)
	GetAreasByCountry(ctx context.Context, countryID uuid.UUID) ([]*domain.Area, error)
}
