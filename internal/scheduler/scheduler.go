// Package scheduler wires the cron job that periodically triggers a
// discovery cycle.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"jobscout/internal/discovery"
)

// Scheduler wraps robfig/cron around the discovery service.
type Scheduler struct {
	cron    *cron.Cron
	service *discovery.Service
	logger  *zap.Logger
	spec    string

	runOnStart bool
}

func New(service *discovery.Service, interval time.Duration, runOnStart bool, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:       cron.New(),
		service:    service,
		logger:     logger,
		spec:       fmt.Sprintf("@every %s", interval),
		runOnStart: runOnStart,
	}
}

// Start registers the cycle job and starts ticking. With runOnStart set, one
// cycle fires immediately so the feed is populated without waiting for the
// first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", s.spec))

	if s.runOnStart {
		go s.runCycle(ctx)
	}

	return nil
}

// Stop shuts the scheduler down and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runCycle(ctx context.Context) {
	persisted, err := s.service.Run(ctx)
	if err != nil {
		if errors.Is(err, discovery.ErrCycleRunning) {
			s.logger.Warn("scheduled cycle skipped, previous cycle still running")
			return
		}
		s.logger.Error("scheduled cycle failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled cycle done", zap.Int("persisted", len(persisted)))
}
