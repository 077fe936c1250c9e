// migrate applies the embedded SQL migrations; run with go run ./cmd/migrate -direction up.
package main

import (
	"flag"

	"github.com/Harshitk-cp/notely/internal/config"
	"github.com/Harshitk-cp/notely/internal/db/migrate"
	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.Load(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	if err := migrate.Run(config.DatabaseURL(), *direction); err != nil {
		logger.Fatal("migration failed", zap.String("direction", *direction), zap.Error(err))
	}
	logger.Info("migrations applied", zap.String("direction", *direction))
}
