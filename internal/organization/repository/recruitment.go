package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"pirate-admin/backend/internal/db"
	"pirate-admin/backend/internal/organization/domain"
)

const (
	getRecruitmentAreaSQL   = `SELECT kind, region_id FROM organization_recruitment_area WHERE organization_id = $1 ORDER BY kind, region_id`
	clearRecruitmentAreaSQL = `DELETE FROM organization_recruitment_area WHERE organization_id = $1`
	addRecruitmentRegionSQL = `INSERT INTO organization_recruitment_area (organization_id, kind, region_id) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`
)

// RecruitmentAreaRepository stores the regions an organization recruits from.
type RecruitmentAreaRepository interface {
	// GetRecruitmentArea returns the stored regions; an organization without any gets an empty area.
	GetRecruitmentArea(ctx context.Context, orgID uuid.UUID) (*domain.RecruitmentArea, error)
	// SetRecruitmentArea replaces the stored regions with area, row by row and without a transaction.
	SetRecruitmentArea(ctx context.Context, orgID uuid.UUID, area *domain.RecruitmentArea) error
}

// PostgresRecruitmentRepository implements RecruitmentAreaRepository.
type PostgresRecruitmentRepository struct {
	db db.DBTX
}

// NewPostgresRecruitmentRepository returns a recruitment area repository that uses the given pool.
func NewPostgresRecruitmentRepository(conn db.DBTX) *PostgresRecruitmentRepository {
	return &PostgresRecruitmentRepository{db: conn}
}

func (r *PostgresRecruitmentRepository) GetRecruitmentArea(ctx context.Context, orgID uuid.UUID) (*domain.RecruitmentArea, error) {
	rows, err := r.db.Query(ctx, getRecruitmentAreaSQL, orgID)
	if err != nil {
		return nil, fmt.Errorf("get recruitment area: %w", err)
	}
	defer rows.Close()

	area := &domain.RecruitmentArea{
		Countries:      []uuid.UUID{},
		Areas:          []uuid.UUID{},
		Municipalities: []uuid.UUID{},
	}
	for rows.Next() {
		var (
			kind string
			id   uuid.UUID
		)
		if err := rows.Scan(&kind, &id); err != nil {
			return nil, fmt.Errorf("get recruitment area: %w", err)
		}
		area.Add(domain.RegionKind(kind), id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get recruitment area: %w", err)
	}
	return area, nil
}

func (r *PostgresRecruitmentRepository) SetRecruitmentArea(ctx context.Context, orgID uuid.UUID, area *domain.RecruitmentArea) error {
	if _, err := r.db.Exec(ctx, clearRecruitmentAreaSQL, orgID); err != nil {
		return fmt.Errorf("clear recruitment area: %w", err)
	}
	if area == nil {
		return nil
	}
	for _, group := range []struct {
		kind domain.RegionKind
		ids  []uuid.UUID
	}{
		{domain.RegionCountry, area.Countries},
		{domain.RegionArea, area.Areas},
		{domain.RegionMunicipality, area.Municipalities},
	} {
		for _, id := range group.ids {
			if _, err := r.db.Exec(ctx, addRecruitmentRegionSQL, orgID, string(group.kind), id); err != nil {
				return fmt.Errorf("add %s %s to recruitment area: %w", group.kind, id, err)
			}
		}
	}
	return nil
}
