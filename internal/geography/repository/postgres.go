package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pirate-admin/backend/internal/db"
	"pirate-admin/backend/internal/geography/domain"
)

const (
	listCountriesSQL      = `SELECT id, name FROM countries ORDER BY name`
	listMunicipalitiesSQL = `SELECT id, name, country_id, area_id FROM municipalities WHERE country_id = $1 ORDER BY name`
	listAreasSQL          = `SELECT id, name, country_id, path FROM areas WHERE country_id = $1 ORDER BY name`
)

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a geography repository that uses the given pool.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

func (r *PostgresRepository) GetCountries(ctx context.Context) ([]*domain.Country, error) {
	return collect(ctx, r.db, "countries", listCountriesSQL, nil, func(row pgx.Rows) (*domain.Country, error) {
		c := &domain.Country{}
		return c, row.Scan(&c.ID, &c.Name)
	})
}

func (r *PostgresRepository) GetMunicipalitiesByCountry(ctx context.Context, countryID uuid.UUID) ([]*domain.Municipality, error) {
	return collect(ctx, r.db, "municipalities", listMunicipalitiesSQL, []any{countryID}, func(row pgx.Rows) (*domain.Municipality, error) {
		m := &domain.Municipality{}
		return m, row.Scan(&m.ID, &m.Name, &m.CountryID, &m.AreaID)
	})
}

func (r *PostgresRepository) GetAreasByCountry(ctx context.Context, countryID uuid.UUID) ([]*domain.Area, error) {
	return collect(ctx, r.db, "areas", listAreasSQL, []any{countryID}, func(row pgx.Rows) (*domain.Area, error) {
		a := &domain.Area{}
		return a, row.Scan(&a.ID, &a.Name, &a.CountryID, &a.Path)
	})
}

// collect runs query and scans every row with scan. The result is never nil on success.
func collect[T any](ctx context.Context, conn db.DBTX, what, query string, args []any, scan func(pgx.Rows) (*T, error)) ([]*T, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", what, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	return out, nil
}
