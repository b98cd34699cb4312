// seed inserts development reference data: organizations, geography and an optional admin user.
// Idempotent: existing rows are left untouched.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/config"
	"pirate-admin/backend/internal/db"
	"pirate-admin/backend/internal/logging"
	membershiprepo "pirate-admin/backend/internal/membership/repository"
	organizationdomain "pirate-admin/backend/internal/organization/domain"
	organizationrepo "pirate-admin/backend/internal/organization/repository"
	settingsrepo "pirate-admin/backend/internal/platformsettings/repository"
	userrepo "pirate-admin/backend/internal/user/repository"
)

var (
	norwayID  = uuid.MustParse("4b0e8f7a-3c1d-4e2f-9a6b-1d2c3e4f5a01")
	swedenID  = uuid.MustParse("4b0e8f7a-3c1d-4e2f-9a6b-1d2c3e4f5a02")
	osloID    = uuid.MustParse("7c2d9e1f-5a3b-4c6d-8e0f-2a4b6c8d0e01")
	vikenID   = uuid.MustParse("7c2d9e1f-5a3b-4c6d-8e0f-2a4b6c8d0e02")
	ostfoldID = uuid.MustParse("7c2d9e1f-5a3b-4c6d-8e0f-2a4b6c8d0e03")
)

type seedOrganization struct {
	name, description string
	recruitment       organizationdomain.RecruitmentArea
}

var organizations = []seedOrganization{
	{"Piratpartiet", "National party organization", organizationdomain.RecruitmentArea{Countries: []uuid.UUID{norwayID}}},
	{"Piratpartiet Oslo", "Oslo chapter", organizationdomain.RecruitmentArea{Areas: []uuid.UUID{osloID}}},
	{"Unge Pirater", "Youth organization", organizationdomain.RecruitmentArea{}},
}

type seedArea struct {
	id      uuid.UUID
	name    string
	country uuid.UUID
	path    string
}

var areas = []seedArea{
	{osloID, "Oslo", norwayID, areaPath(osloID)},
	{vikenID, "Viken", norwayID, areaPath(vikenID)},
	{ostfoldID, "Østfold", norwayID, areaPath(vikenID, ostfoldID)},
}

// areaPath joins the ancestor ids of an area, ending with its own id.
func areaPath(chain ...uuid.UUID) string {
	parts := make([]string, len(chain))
	for i, id := range chain {
		parts[i] = id.String()
	}
	return strings.Join(parts, ".")
}

type seedMunicipality struct {
	name string
	area uuid.UUID
}

var municipalities = []seedMunicipality{
	{"Oslo", osloID},
	{"Bærum", vikenID},
	{"Asker", vikenID},
	{"Fredrikstad", ostfoldID},
	{"Sarpsborg", ostfoldID},
}

func main() {
	adminFlag := flag.String("admin", "", "identity id to create as a local admin user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, *adminFlag, logger); err != nil {
		logger.Error("seed failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("seed completed")
}

func run(ctx context.Context, cfg *config.Config, adminID string, logger *zap.Logger) error {
	pool, err := db.Open(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	settings := settingsrepo.NewPostgresRepository(pool)
	memberships := membershiprepo.NewPostgresRepository(pool)
	orgs := organizationrepo.NewPostgresRepository(pool, memberships, settings, logger)
	recruitment := organizationrepo.NewPostgresRecruitmentRepository(pool)

	if err := seedGeography(ctx, pool); err != nil {
		return err
	}

	var defaultOrg uuid.UUID
	for i, o := range organizations {
		org := orgs.GetByName(ctx, o.name)
		if org == nil {
			if org, err = orgs.Create(ctx, o.name, o.description, true); err != nil {
				return fmt.Errorf("create organization %q: %w", o.name, err)
			}
			if org == nil {
				return fmt.Errorf("create organization %q: name taken concurrently", o.name)
			}
			if !o.recruitment.Empty() {
				if err := recruitment.SetRecruitmentArea(ctx, org.ID, &o.recruitment); err != nil {
					return fmt.Errorf("recruitment area for %q: %w", o.name, err)
				}
			}
			logger.Info("organization created", zap.String("name", o.name))
		}
		if i == 0 {
			defaultOrg = org.ID
		}
	}
	current, err := settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	if current.DefaultOrganization == nil {
		if err := settings.SetDefaultOrganization(ctx, defaultOrg); err != nil {
			return fmt.Errorf("set default organization: %w", err)
		}
	}

	if adminID == "" {
		return nil
	}
	id, err := uuid.Parse(adminID)
	if err != nil {
		return fmt.Errorf("admin id: %w", err)
	}
	return ensureAdmin(ctx, pool, id, defaultOrg, logger)
}

// ensureAdmin creates the local user row for id, sets its admin flag and makes it a member of orgID.
func ensureAdmin(ctx context.Context, conn db.DBTX, id, orgID uuid.UUID, logger *zap.Logger) error {
	users := userrepo.NewPostgresRepository(conn)
	memberships := membershiprepo.NewPostgresRepository(conn)

	info, err := users.EnsureUser(ctx, id)
	if err != nil {
		return err
	}
	if _, err := conn.Exec(ctx, `UPDATE users SET admin = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("promote admin: %w", err)
	}
	if err := memberships.AddMember(ctx, id, orgID); err != nil {
		return fmt.Errorf("add admin membership: %w", err)
	}
	members, err := memberships.ListMembersByOrg(ctx, orgID)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	fields := []zap.Field{zap.Stringer("id", id), zap.Int("default_org_members", len(members))}
	if info != nil && info.Number != nil {
		fields = append(fields, zap.Int64("number", *info.Number))
	}
	logger.Info("admin user ready", fields...)
	return nil
}

func seedGeography(ctx context.Context, conn db.DBTX) error {
	for id, name := range map[uuid.UUID]string{norwayID: "Norway", swedenID: "Sweden"} {
		if _, err := conn.Exec(ctx,
			`INSERT INTO countries (id, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`, id, name); err != nil {
			return fmt.Errorf("seed country %q: %w", name, err)
		}
	}
	for _, a := range areas {
		if _, err := conn.Exec(ctx,
			`INSERT INTO areas (id, name, country_id, path) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
			a.id, a.name, a.country, a.path); err != nil {
			return fmt.Errorf("seed area %q: %w", a.name, err)
		}
	}
	for _, m := range municipalities {
		id := uuid.NewSHA1(norwayID, []byte(m.name))
		if _, err := conn.Exec(ctx,
			`INSERT INTO municipalities (id, name, country_id, area_id) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
			id, m.name, norwayID, m.area); err != nil {
			return fmt.Errorf("seed municipality %q: %w", m.name, err)
		}
	}
	return nil
}
