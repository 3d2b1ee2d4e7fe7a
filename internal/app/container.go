package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"jobscout/internal/config"
	"jobscout/internal/database"
	"jobscout/internal/database/migration"
	dbpostgres "jobscout/internal/database/postgres"
	"jobscout/internal/discovery"
	"jobscout/internal/infrastructure/cache"
	"jobscout/internal/notify"
	"jobscout/internal/proposal"
	"jobscout/internal/repository"
	"jobscout/internal/scheduler"
	"jobscout/internal/scoring"
	"jobscout/internal/source"
	"jobscout/internal/usecase"
	"jobscout/internal/ws"
)

// Container owns every long-lived dependency of the process.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Opportunities repository.OpportunityRepository
	Applications  repository.ApplicationRepository
	Analytics     repository.AnalyticsRepository

	OpportunityUC usecase.OpportunityUsecase
	ImportUC      usecase.ImportUsecase
	AnalyticsUC   usecase.AnalyticsUsecase

	Discovery *discovery.Service
	Scheduler *scheduler.Scheduler
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	hub := ws.NewHub(logger)

	opps := repository.NewPostgresOpportunityRepository(db)
	apps := repository.NewPostgresApplicationRepository(db)
	analytics := repository.NewPostgresAnalyticsRepository(db)

	engine := scoring.NewEngine()
	proposals := proposal.NewGenerator()

	notifier := notify.NewTelegram(logger, cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	sources := source.Registry{
		source.NewWeb3Careers(logger, cfg.Discovery.Headless),
		source.NewCryptoJobsList(logger),
		source.NewCryptoJobs(logger),
		source.NewGitHub(logger, cfg.Discovery.GitHubToken),
	}

	svc := discovery.NewService(sources, opps, engine, notifier, logger)
	svc.SetCycleHook(func(s discovery.Summary) {
		invCtx, invCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer invCancel()
		if err := redisCache.InvalidateOpportunityCaches(invCtx); err != nil {
			logger.Warn("post-cycle cache invalidation failed", zap.Error(err))
		}
		hub.NotifyDiscoveryCompleted(s.Discovered, s.Persisted, s.Notified)
	})

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redisCache,
		Hub:    hub,

		Opportunities: opps,
		Applications:  apps,
		Analytics:     analytics,

		OpportunityUC: usecase.NewOpportunityUsecase(opps, apps, proposals, redisCache, logger),
		ImportUC:      usecase.NewImportUsecase(opps, engine, redisCache, logger),
		AnalyticsUC:   usecase.NewAnalyticsUsecase(analytics, redisCache, logger),

		Discovery: svc,
		Scheduler: scheduler.New(svc, cfg.Discovery.Interval, cfg.Discovery.RunOnStart, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
