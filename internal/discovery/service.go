// Package discovery runs the fetch → dedup → score → persist → notify cycle.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"jobscout/internal/domain/opportunity"
	"jobscout/internal/notify"
	"jobscout/internal/pkg/fingerprint"
	"jobscout/internal/repository"
	"jobscout/internal/scoring"
	"jobscout/internal/source"
)

// ErrCycleRunning is returned when a cycle is triggered while another one
// holds the run lock. Cycles never overlap against the same store.
var ErrCycleRunning = errors.New("discovery cycle already running")

// sourcePause is the politeness interval between source adapters.
const sourcePause = 2 * time.Second

// Store is the slice of the opportunity store the pipeline needs.
type Store interface {
	ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error)
	Insert(ctx context.Context, opp opportunity.Scored) (uuid.UUID, error)
}

// Summary describes one completed cycle.
type Summary struct {
	Discovered int
	Persisted  int
	Notified   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Service orchestrates discovery cycles over a fixed, ordered source
// registry.
type Service struct {
	sources  source.Registry
	store    Store
	engine   scoring.Evaluator
	notifier notify.Notifier
	logger   *zap.Logger

	pause time.Duration
	mu    sync.Mutex

	// onCycleDone runs after every cycle (cache invalidation, ws broadcast).
	onCycleDone func(Summary)
}

func NewService(sources source.Registry, store Store, engine scoring.Evaluator, notifier notify.Notifier, logger *zap.Logger) *Service {
	return &Service{
		sources:  sources,
		store:    store,
		engine:   engine,
		notifier: notifier,
		logger:   logger,
		pause:    sourcePause,
	}
}

// SetCycleHook registers a callback invoked with the summary of every
// completed cycle. Must be called before the first Run.
func (s *Service) SetCycleHook(fn func(Summary)) {
	s.onCycleDone = fn
}

// SetPause overrides the inter-source pause. Used by tests.
func (s *Service) SetPause(d time.Duration) {
	if d > 0 {
		s.pause = d
	}
}

// Run executes one discovery cycle and returns the opportunities actually
// persisted. Individual source or row failures are logged and skipped; only
// an unreachable store or caller cancellation aborts the cycle.
func (s *Service) Run(ctx context.Context) ([]opportunity.Scored, error) {
	if !s.mu.TryLock() {
		return nil, ErrCycleRunning
	}
	defer s.mu.Unlock()

	startedAt := time.Now().UTC()

	batch := make([]opportunity.Posting, 0)
	limiter := rate.NewLimiter(rate.Every(s.pause), 1)

	for _, src := range s.sources {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		postings, err := src.Discover(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Error("source discover failed", zap.String("source", src.Name()), zap.Error(err))
			continue
		}
		batch = append(batch, postings...)
	}

	s.logger.Info("discovery batch collected", zap.Int("total", len(batch)))

	persisted := make([]opportunity.Scored, 0)
	notified := 0

	for _, posting := range batch {
		if err := ctx.Err(); err != nil {
			return persisted, err
		}

		fp := fingerprint.New(posting.URL, posting.Title)

		exists, err := s.store.ExistsByFingerprint(ctx, fp)
		if err != nil {
			// Not-found is a normal outcome; an error here means the store
			// itself is unreachable, which is cycle-fatal.
			return persisted, fmt.Errorf("dedup check: %w", err)
		}
		if exists {
			continue
		}

		res := s.engine.Evaluate(posting)
		if res.Score < scoring.ScoreThreshold {
			continue
		}

		scored := opportunity.Scored{
			Posting:       posting,
			Score:         res.Score,
			Category:      res.Category,
			MatchedSkills: res.MatchedSkills,
			MatchReason:   res.MatchReason,
			Fingerprint:   fp,
			SourceType:    opportunity.SourceTypeAutomated,
		}

		if _, err := s.store.Insert(ctx, scored); err != nil {
			if errors.Is(err, repository.ErrDuplicateOpportunity) {
				// Lost the race to another writer; same outcome as the
				// pre-insert check.
				continue
			}
			s.logger.Error("persist failed", zap.String("url", scored.URL), zap.Error(err))
			continue
		}
		persisted = append(persisted, scored)

		if scored.Score >= scoring.NotifyThreshold {
			if err := s.notifier.Send(ctx, formatNotification(scored)); err != nil {
				s.logger.Warn("notification failed", zap.String("url", scored.URL), zap.Error(err))
			} else {
				notified++
			}
		}
	}

	summary := Summary{
		Discovered: len(batch),
		Persisted:  len(persisted),
		Notified:   notified,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}
	s.logger.Info("discovery cycle finished",
		zap.Int("discovered", summary.Discovered),
		zap.Int("persisted", summary.Persisted),
		zap.Int("notified", summary.Notified),
		zap.Duration("took", summary.FinishedAt.Sub(summary.StartedAt)),
	)

	if s.onCycleDone != nil {
		s.onCycleDone(summary)
	}

	return persisted, nil
}

func formatNotification(opp opportunity.Scored) string {
	return fmt.Sprintf(
		"High-scoring opportunity (%d/100)\n\nTitle: %s\nSource: %s\nReason: %s\nURL: %s",
		opp.Score, opp.Title, opp.Source, opp.MatchReason, opp.URL,
	)
}
