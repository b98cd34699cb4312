package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/db"
	"pirate-admin/backend/internal/logging"
	"pirate-admin/backend/internal/organization/domain"
)

const (
	insertOrganizationSQL = `INSERT INTO organizations (id, name, description, active, created) VALUES ($1, $2, $3, $4, $5)`
	selectByIDSQL         = `SELECT id, name, description, active, created FROM organizations WHERE id = $1`
	selectByNameSQL       = `SELECT id, name, description, active, created FROM organizations WHERE name = $1`
	updateOrganizationSQL = `UPDATE organizations SET name = $1, description = $2, active = $3 WHERE id = $4`
	deleteOrganizationSQL = `DELETE FROM organizations WHERE id = $1`

	listAllSQL    = `SELECT o.id, o.name, o.description, o.active, o.created FROM organizations o`
	listSearchSQL = `SELECT o.id, o.name, o.description, o.active, o.created FROM organizations o
WHERE o.name LIKE $1
OR o.description LIKE $1
OR to_char(o.created, 'YYYY-MM-DD HH24:MI:SS.US') LIKE $1`
)

type orderKey struct {
	column    domain.OrderColumn
	ascending bool
}

// orderClauses is the allow-list of ORDER BY variants; identifiers are never interpolated from input.
var orderClauses = map[orderKey]string{
	{domain.OrderByName, true}:     ` ORDER BY o.name ASC`,
	{domain.OrderByName, false}:    ` ORDER BY o.name DESC`,
	{domain.OrderByCreated, true}:  ` ORDER BY o.created ASC`,
	{domain.OrderByCreated, false}: ` ORDER BY o.created DESC`,
}

// orderClause returns the ORDER BY clause for column, falling back to name for unknown columns.
func orderClause(column domain.OrderColumn, ascending bool) string {
	if clause, ok := orderClauses[orderKey{column, ascending}]; ok {
		return clause
	}
	return orderClauses[orderKey{domain.OrderByName, ascending}]
}

type PostgresRepository struct {
	db          db.DBTX
	memberships MembershipRemover
	settings    DefaultOrganizationSettings
	logger      *zap.Logger
	now         func() time.Time
}

// NewPostgresRepository returns an organization repository backed by conn. memberships and settings
// are the collaborators used by GetDefault and Delete. logger may be nil.
func NewPostgresRepository(conn db.DBTX, memberships MembershipRemover, settings DefaultOrganizationSettings, logger *zap.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:          conn,
		memberships: memberships,
		settings:    settings,
		logger:      logging.OrGlobal(logger).Named("organizations"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (r *PostgresRepository) Create(ctx context.Context, name, description string, active bool) (*domain.Organization, error) {
	org := &domain.Organization{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Active:      active,
		Created:     r.now(),
	}
	if _, err := r.db.Exec(ctx, insertOrganizationSQL, org.ID, org.Name, org.Description, org.Active, org.Created); err != nil {
		if db.IsUniqueViolation(err) {
			r.logger.Debug(err.Error())
			r.logger.Warn("tried to create organization but it already existed", zap.Stringer("id", org.ID), zap.String("name", name))
			return nil, nil
		}
		return nil, fmt.Errorf("create organization: %w", err)
	}
	return org, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	org, err := scanOrganization(r.db.QueryRow(ctx, selectByIDSQL, id))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return org, nil
}

func (r *PostgresRepository) GetDefault(ctx context.Context) *domain.Organization {
	id, err := r.settings.GetDefaultOrganization(ctx)
	if err != nil {
		r.logger.Error("failed to retrieve the default organization", zap.Error(err))
		return nil
	}
	if id == nil {
		r.logger.Debug("no default organization found")
		return nil
	}
	org, err := r.GetByID(ctx, *id)
	if err != nil {
		r.logger.Error("failed to load the default organization", zap.Stringer("id", *id), zap.Error(err))
		return nil
	}
	return org
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) *domain.Organization {
	org, err := scanOrganization(r.db.QueryRow(ctx, selectByNameSQL, name))
	if err != nil {
		if db.IsNoRows(err) {
			r.logger.Debug("no organization found", zap.String("name", name))
			return nil
		}
		r.logger.Error("failed to retrieve an organization by name", zap.String("name", name), zap.Error(err))
		return nil
	}
	return org
}

func (r *PostgresRepository) List(ctx context.Context, search string, orderColumn domain.OrderColumn, ascending bool) ([]*domain.Organization, error) {
	order := orderClause(orderColumn, ascending)

	query := listAllSQL + order
	var args []any
	if search != "" {
		query = listSearchSQL + order
		args = append(args, "%"+search+"%")
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	out := []*domain.Organization{}
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("list organizations: %w", err)
		}
		out = append(out, org)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, name, description string, active bool) (*domain.Organization, error) {
	if _, err := r.db.Exec(ctx, updateOrganizationSQL, name, description, active, id); err != nil {
		if db.IsUniqueViolation(err) {
			r.logger.Debug(err.Error())
			r.logger.Warn("tried to update organization but the name is taken", zap.Stringer("id", id), zap.String("name", name))
			return nil, nil
		}
		return nil, fmt.Errorf("update organization: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.memberships.RemoveMembershipsFromOrg(ctx, id); err != nil {
		return fmt.Errorf("delete organization: remove memberships: %w", err)
	}
	if err := r.settings.ClearDefaultOrganization(ctx, id); err != nil {
		return fmt.Errorf("delete organization: clear default: %w", err)
	}
	if _, err := r.db.Exec(ctx, deleteOrganizationSQL, id); err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrganization(row rowScanner) (*domain.Organization, error) {
	org := &domain.Organization{}
	if err := row.Scan(&org.ID, &org.Name, &org.Description, &org.Active, &org.Created); err != nil {
		return nil, err
	}
	return org, nil
}
