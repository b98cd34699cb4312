// migrate applies the embedded SQL migrations; run with go run ./cmd/migrate [-direction down].
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"pirate-admin/backend/internal/config"
	"pirate-admin/backend/internal/db/migrate"
	"pirate-admin/backend/internal/logging"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
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

	if err := migrate.Run(cfg.DatabaseURL, migrate.Direction(*direction)); err != nil {
		logger.Error("migrate failed", zap.String("direction", *direction), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("migrations applied", zap.String("direction", *direction))
}
