package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"pirate-admin/backend/internal/db"
	"pirate-admin/backend/internal/platformsettings/domain"
)

// ErrSettingsMissing is returned when the settings row has not been created by the migrations.
var ErrSettingsMissing = errors.New("settings row missing")

const (
	selectDefaultOrganizationSQL = `SELECT default_organization FROM settings`
	setDefaultOrganizationSQL    = `UPDATE settings SET default_organization = $1`
	clearDefaultOrganizationSQL  = `UPDATE settings SET default_organization = NULL WHERE default_organization = $1`
)

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a settings repository that uses the given pool.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

func (r *PostgresRepository) Get(ctx context.Context) (*domain.Settings, error) {
	id, err := r.GetDefaultOrganization(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Settings{DefaultOrganization: id}, nil
}

func (r *PostgresRepository) GetDefaultOrganization(ctx context.Context) (*uuid.UUID, error) {
	var id *uuid.UUID
	if err := r.db.QueryRow(ctx, selectDefaultOrganizationSQL).Scan(&id); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrSettingsMissing
		}
		return nil, err
	}
	return id, nil
}

func (r *PostgresRepository) SetDefaultOrganization(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, setDefaultOrganizationSQL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSettingsMissing
	}
	return nil
}

func (r *PostgresRepository) ClearDefaultOrganization(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, clearDefaultOrganizationSQL, id)
	return err
}
