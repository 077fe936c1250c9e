package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/notely/internal/api"
	"github.com/Harshitk-cp/notely/internal/buildconfig"
	"github.com/Harshitk-cp/notely/internal/config"
	"github.com/Harshitk-cp/notely/internal/db"
	"github.com/Harshitk-cp/notely/internal/db/migrate"
	"github.com/Harshitk-cp/notely/internal/security"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger := newLogger(config.LogLevel())
	defer func() { _ = logger.Sync() }()

	logger.Info("starting", zap.String("build", buildconfig.Current().String()))

	secret := config.JWTSecret()
	if secret == "" {
		logger.Fatal("JWT_SECRET is required")
	}
	tokens, err := security.NewTokenService([]byte(secret), config.JWTIssuer(), config.JWTTTL())
	if err != nil {
		logger.Fatal("failed to create token service", zap.Error(err))
	}

	if config.MigrateOnStart() {
		if err := migrate.Run(config.DatabaseURL(), "up"); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		logger.Info("migrations applied")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.Connect(ctx, config.DatabaseURL())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to database")

	app := api.NewApp(pool, tokens, logger)
	go app.RateLimiter.RunCleanup(ctx, 5*time.Minute)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

// newLogger builds a production JSON logger; an unparsable level falls back to info.
func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
