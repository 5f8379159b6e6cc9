package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pennyplan/internal/auth"
	"pennyplan/internal/config"
	"pennyplan/internal/logger"
	"pennyplan/internal/store"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// A backing file that cannot be deserialized refuses to start the
	// process: better than serving from an unknown state.
	users, err := store.OpenUserStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open user store: %w", err)
	}
	plans, err := store.OpenPlanStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open savings plan store: %w", err)
	}

	// Startup probe: issue and verify a throwaway token so a bad
	// TOKEN_SECRET fails here instead of on the first login.
	codec := auth.NewCodec([]byte(cfg.TokenSecret), cfg.TokenTTL)
	probe, err := codec.Issue("startup-probe", "")
	if err != nil {
		return fmt.Errorf("token codec probe failed: %w", err)
	}
	if _, err := codec.Verify(probe.Token); err != nil {
		return fmt.Errorf("token codec probe failed: %w", err)
	}

	log.Infow("pennyplan core ready",
		"data_dir", cfg.DataDir,
		"users", users.Len(),
		"plans", plans.Len(),
		"token_ttl", cfg.TokenTTL,
		"refresh_buffer", cfg.RefreshBuffer,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	return nil
}
