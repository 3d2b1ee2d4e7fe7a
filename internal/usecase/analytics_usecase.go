package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"jobscout/internal/repository"
)

// analyticsTTL is shorter than the listing TTL so dashboards stay close to
// live even when invalidation misses.
const analyticsTTL = 60 * time.Second

type AnalyticsUsecase interface {
	Overview(ctx context.Context) (repository.Overview, error)
	Funnel(ctx context.Context) (repository.Funnel, error)
	Sources(ctx context.Context) ([]repository.SourceStat, error)
	Categories(ctx context.Context) ([]repository.CategoryStat, error)
}

type Analytics struct {
	repo   repository.AnalyticsRepository
	cache  ListCache
	logger *zap.Logger
}

func NewAnalyticsUsecase(repo repository.AnalyticsRepository, cache ListCache, logger *zap.Logger) *Analytics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analytics{repo: repo, cache: cache, logger: logger}
}

func (u *Analytics) Overview(ctx context.Context) (repository.Overview, error) {
	const key = "analytics:overview"
	var cached repository.Overview
	if u.hit(ctx, key, &cached) {
		return cached, nil
	}
	out, err := u.repo.Overview(ctx)
	if err != nil {
		return repository.Overview{}, err
	}
	u.put(ctx, key, out)
	return out, nil
}

func (u *Analytics) Funnel(ctx context.Context) (repository.Funnel, error) {
	const key = "analytics:funnel"
	var cached repository.Funnel
	if u.hit(ctx, key, &cached) {
		return cached, nil
	}
	out, err := u.repo.Funnel(ctx)
	if err != nil {
		return repository.Funnel{}, err
	}
	u.put(ctx, key, out)
	return out, nil
}

func (u *Analytics) Sources(ctx context.Context) ([]repository.SourceStat, error) {
	const key = "analytics:sources"
	var cached []repository.SourceStat
	if u.hit(ctx, key, &cached) {
		return cached, nil
	}
	out, err := u.repo.SourceStats(ctx)
	if err != nil {
		return nil, err
	}
	u.put(ctx, key, out)
	return out, nil
}

func (u *Analytics) Categories(ctx context.Context) ([]repository.CategoryStat, error) {
	const key = "analytics:categories"
	var cached []repository.CategoryStat
	if u.hit(ctx, key, &cached) {
		return cached, nil
	}
	out, err := u.repo.CategoryStats(ctx)
	if err != nil {
		return nil, err
	}
	u.put(ctx, key, out)
	return out, nil
}

func (u *Analytics) hit(ctx context.Context, key string, out any) bool {
	if u.cache == nil {
		return false
	}
	hit, err := u.cache.GetJSON(ctx, key, out)
	return err == nil && hit
}

func (u *Analytics) put(ctx context.Context, key string, v any) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetJSON(ctx, key, v, analyticsTTL); err != nil {
		u.logger.Debug("analytics cache set failed", zap.Error(err))
	}
}
