package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pirate-admin/backend/internal/db"
	"pirate-admin/backend/internal/membership/domain"
)

const (
	listMembersByOrgSQL = `SELECT user_id, organization_id, created FROM member_org WHERE organization_id = $1 ORDER BY created`
	addMemberSQL        = `INSERT INTO member_org (user_id, organization_id, created) VALUES ($1, $2, $3)`
	removeByOrgSQL      = `DELETE FROM member_org WHERE organization_id = $1`
)

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a membership repository that uses the given pool.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// ListMembersByOrg returns all memberships for the given org. Returns (nil, error) only on database errors.
func (r *PostgresRepository) ListMembersByOrg(ctx context.Context, orgID uuid.UUID) ([]*domain.Membership, error) {
	rows, err := r.db.Query(ctx, listMembersByOrgSQL, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Membership
	for rows.Next() {
		m := &domain.Membership{}
		if err := rows.Scan(&m.UserID, &m.OrganizationID, &m.Created); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// AddMember creates the membership. An existing membership is not an error.
func (r *PostgresRepository) AddMember(ctx context.Context, userID, orgID uuid.UUID) error {
	_, err := r.db.Exec(ctx, addMemberSQL, userID, orgID, time.Now().UTC())
	if err != nil && !db.IsUniqueViolation(err) {
		return err
	}
	return nil
}

func (r *PostgresRepository) RemoveMembershipsFromOrg(ctx context.Context, orgID uuid.UUID) error {
	_, err := r.db.Exec(ctx, removeByOrgSQL, orgID)
	return err
}
