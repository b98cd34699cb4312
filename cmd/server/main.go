package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/audit"
	"pirate-admin/backend/internal/config"
	"pirate-admin/backend/internal/db"
	geographyhandler "pirate-admin/backend/internal/geography/handler"
	geographyrepo "pirate-admin/backend/internal/geography/repository"
	healthhandler "pirate-admin/backend/internal/health/handler"
	"pirate-admin/backend/internal/identity/kratos"
	"pirate-admin/backend/internal/logging"
	membershiprepo "pirate-admin/backend/internal/membership/repository"
	organizationhandler "pirate-admin/backend/internal/organization/handler"
	organizationrepo "pirate-admin/backend/internal/organization/repository"
	"pirate-admin/backend/internal/platform/rbac"
	"pirate-admin/backend/internal/platform/web"
	settingsrepo "pirate-admin/backend/internal/platformsettings/repository"
	"pirate-admin/backend/internal/policy/engine"
	"pirate-admin/backend/internal/server"
	sessionhandler "pirate-admin/backend/internal/session/handler"
	"pirate-admin/backend/internal/session/resolver"
	"pirate-admin/backend/internal/telemetry/otel"
	userhandler "pirate-admin/backend/internal/user/handler"
	userrepo "pirate-admin/backend/internal/user/repository"
	templates "pirate-admin/backend/web"
)

const shutdownTimeout = 15 * time.Second

func main() {
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

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	providers, err := otel.NewProviders(ctx, otel.Options{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
		Insecure:    cfg.OTLPInsecure,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	pool, err := db.Open(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	tmpl, err := templates.Parse(cfg.TemplatesDir)
	if err != nil {
		return err
	}

	evaluator, err := engine.NewOPAEvaluator(ctx, engine.DefaultPolicy)
	if err != nil {
		return fmt.Errorf("policy: %w", err)
	}

	users := userrepo.NewPostgresRepository(pool)
	settings := settingsrepo.NewPostgresRepository(pool)
	memberships := membershiprepo.NewPostgresRepository(pool)
	orgs := organizationrepo.NewPostgresRepository(pool, memberships, settings, logger)
	recruitment := organizationrepo.NewPostgresRecruitmentRepository(pool)
	geography := geographyrepo.NewPostgresRepository(pool)

	identity := kratos.NewClient(cfg.KratosPublicURL, cfg.IdentityTimeout())
	sessions := resolver.New(identity, users, logger)
	permissions := rbac.NewChecker(users, evaluator, logger)

	producers := audit.Fanout{}
	if kp := audit.NewKafkaProducer(cfg.AuditKafkaBrokersList(), cfg.AuditKafkaTopic); kp != nil {
		producers = append(producers, kp)
	}
	if providers.Exporting {
		producers = append(producers, otel.NewAuditProducer(providers.LoggerProvider))
	}
	var producer audit.Producer
	if len(producers) > 0 {
		producer = producers
	}
	auditLogger := audit.NewLogger(producer, audit.ClientIPFromContext, logger)
	defer func() {
		if err := auditLogger.Close(); err != nil {
			logger.Warn("closing audit producers", zap.Error(err))
		}
	}()

	base := web.NewBase(logger, tmpl, permissions)
	router := server.NewRouter(server.Options{
		ServiceName: cfg.ServiceName,
		LoginURL:    cfg.LoginURL,
		Templates:   tmpl,
		Logger:      logger,
	}, server.Deps{
		Sessions:      sessions,
		Audit:         auditLogger,
		Health:        healthhandler.NewHandler(pool, evaluator, logger),
		Organizations: organizationhandler.NewHandler(base, orgs, settings, recruitment),
		Geography:     geographyhandler.NewHandler(base, geography),
		Users:         userhandler.NewHandler(base, users),
		Session:       sessionhandler.NewHandler(base),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}
