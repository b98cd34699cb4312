package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pirate-admin/backend/internal/db"
	"pirate-admin/backend/internal/user/domain"
)

const (
	selectUserInfoSQL = `SELECT id, created, number, admin FROM users WHERE id = $1`
	selectAdminSQL    = `SELECT admin FROM users WHERE id = $1`
	listUserInfoSQL   = `SELECT id, created, number, admin FROM users ORDER BY number`
	ensureUserSQL     = `INSERT INTO users (id, created) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`
)

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a user repository that uses the given pool.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// GetUserInfo returns the local row for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetUserInfo(ctx context.Context, id uuid.UUID) (*domain.UserInfo, error) {
	info, err := scanUserInfo(r.db.QueryRow(ctx, selectUserInfoSQL, id))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return info, nil
}

func (r *PostgresRepository) CheckUserAdmin(ctx context.Context, id uuid.UUID) (bool, error) {
	var admin bool
	if err := r.db.QueryRow(ctx, selectAdminSQL, id).Scan(&admin); err != nil {
		if db.IsNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return admin, nil
}

func (r *PostgresRepository) ListUserInfo(ctx context.Context) ([]*domain.UserInfo, error) {
	rows, err := r.db.Query(ctx, listUserInfoSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.UserInfo{}
	for rows.Next() {
		info, err := scanUserInfo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) EnsureUser(ctx context.Context, id uuid.UUID) (*domain.UserInfo, error) {
	if _, err := r.db.Exec(ctx, ensureUserSQL, id, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	info, err := r.GetUserInfo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	return info, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserInfo(row rowScanner) (*domain.UserInfo, error) {
	info := &domain.UserInfo{}
	if err := row.Scan(&info.ID, &info.Created, &info.Number, &info.Admin); err != nil {
		return nil, err
	}
	return info, nil
}
