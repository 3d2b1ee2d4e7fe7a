// Command discover runs a single discovery cycle and exits. Useful for
// cron-driven deployments and for exercising the pipeline by hand.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"jobscout/internal/app"
	"jobscout/internal/config"
	"jobscout/internal/logger"
)

func main() {
	os.Exit(run())
}

// run is separated from main so the deferred teardown (pool and Redis
// client) executes before the process exits on failure.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	zl, err := logger.New(cfg.App.Environment)
	if err != nil {
		log.Printf("failed to build logger: %v", err)
		return 1
	}
	defer func() { _ = zl.Sync() }()

	container, err := app.NewContainer(cfg, zl)
	if err != nil {
		zl.Error("failed to build container", zap.Error(err))
		return 1
	}
	defer func() {
		if err := container.Close(); err != nil {
			zl.Warn("close error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	persisted, err := container.Discovery.Run(ctx)
	if err != nil {
		zl.Error("discovery cycle failed", zap.Error(err))
		return 1
	}
	zl.Info("discovery cycle complete", zap.Int("persisted", len(persisted)))
	return 0
}
