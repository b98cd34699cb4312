package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pirate-admin/backend/internal/db/dbtest"
	"pirate-admin/backend/internal/organization/domain"
)

func TestGetRecruitmentArea(t *testing.T) {
	orgID := uuid.New()
	country, area, muni := uuid.New(), uuid.New(), uuid.New()
	fake := &dbtest.FakeDB{QueryFunc: func(string, []any) ([][]any, error) {
		return [][]any{{"area", area}, {"country", country}, {"municipality", muni}}, nil
	}}

	got, err := NewPostgresRecruitmentRepository(fake).GetRecruitmentArea(context.Background(), orgID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{country}, got.Countries)
	assert.Equal(t, []uuid.UUID{area}, got.Areas)
	assert.Equal(t, []uuid.UUID{muni}, got.Municipalities)
	assert.Equal(t, []any{orgID}, fake.Calls()[0].Args)
}

func TestGetRecruitmentArea_EmptyIsNotNil(t *testing.T) {
	got, err := NewPostgresRecruitmentRepository(&dbtest.FakeDB{}).GetRecruitmentArea(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, got.Countries)
	assert.NotNil(t, got.Areas)
	assert.NotNil(t, got.Municipalities)
	assert.True(t, got.Empty())
}

func TestGetRecruitmentArea_QueryError(t *testing.T) {
	boom := errors.New("connection reset")
	fake := &dbtest.FakeDB{QueryFunc: func(string, []any) ([][]any, error) { return nil, boom }}
	_, err := NewPostgresRecruitmentRepository(fake).GetRecruitmentArea(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
}

func TestSetRecruitmentArea_ReplacesRows(t *testing.T) {
	orgID := uuid.New()
	country, area, muni := uuid.New(), uuid.New(), uuid.New()
	fake := &dbtest.FakeDB{}

	err := NewPostgresRecruitmentRepository(fake).SetRecruitmentArea(context.Background(), orgID, &domain.RecruitmentArea{
		Countries:      []uuid.UUID{country},
		Areas:          []uuid.UUID{area},
		Municipalities: []uuid.UUID{muni},
	})
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 4)
	assert.True(t, strings.HasPrefix(calls[0].SQL, "DELETE FROM organization_recruitment_area"))
	assert.Equal(t, []any{orgID, "country", country}, calls[1].Args)
	assert.Equal(t, []any{orgID, "area", area}, calls[2].Args)
	assert.Equal(t, []any{orgID, "municipality", muni}, calls[3].Args)
}

func TestSetRecruitmentArea_NilClearsOnly(t *testing.T) {
	fake := &dbtest.FakeDB{}
	require.NoError(t, NewPostgresRecruitmentRepository(fake).SetRecruitmentArea(context.Background(), uuid.New(), nil))
	assert.Len(t, fake.Calls(), 1)
}

func TestSetRecruitmentArea_InsertErrorStops(t *testing.T) {
	boom := errors.New("insert failed")
	fake := &dbtest.FakeDB{ExecFunc: func(sql string, _ []any) (pgconn.CommandTag, error) {
		if strings.HasPrefix(sql, "INSERT") {
			return pgconn.CommandTag{}, boom
		}
		return pgconn.NewCommandTag("DELETE 0"), nil
	}}

	err := NewPostgresRecruitmentRepository(fake).SetRecruitmentArea(context.Background(), uuid.New(), &domain.RecruitmentArea{
		Countries: []uuid.UUID{uuid.New(), uuid.New()},
	})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, fake.CallsContaining("INSERT"), 1)
}
