package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libdb "parkfleet/libs/db"
	libredis "parkfleet/libs/redis"

	"parkfleet/internal/config"
	httpserver "parkfleet/internal/http"
	"parkfleet/internal/http/handlers"
	"parkfleet/internal/http/middleware"
	"parkfleet/internal/ingest"
	"parkfleet/internal/jobs"
	"parkfleet/internal/observability"
	"parkfleet/internal/platform"
	"parkfleet/internal/repository"
	"parkfleet/internal/scheduler"
	"parkfleet/internal/service"
	"parkfleet/internal/status"
	"parkfleet/internal/tasklock"
)

// App wires fleet worker dependencies: the job scheduler, the telemetry
// ingest listener and the admin HTTP API.
type App struct {
	scheduler *scheduler.Scheduler
	ingest    *ingest.Server
	server    *httpserver.Server
	sessions  []*platform.Session
	db        *sql.DB
	redis     *redis.Client
	logger    *zap.Logger
}

// New constructs application components.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	sqlDB, err := libdb.NewPostgresDB(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	// Without redis the lock only excludes jobs within this process.
	var (
		lockCache   tasklock.Cache
		redisClient *redis.Client
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = libredis.NewRedisClient(libredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		lockCache = tasklock.NewRedisCache(redisClient)
	} else {
		logger.Warn("redis not configured, task lock is process-local")
		lockCache = tasklock.NewMemoryCache()
	}
	locker := tasklock.NewLocker(lockCache, cfg.LockExpire(), cfg.LockCooldown(), logger)

	driverRepo := repository.NewDriverRepository(sqlDB)
	vehicleRepo := repository.NewVehicleRepository(sqlDB)
	telemetryRepo := repository.NewTelemetryRepository(sqlDB)
	applicationRepo := repository.NewJobApplicationRepository(sqlDB)

	telemetryService := service.NewTelemetryService(vehicleRepo, telemetryRepo, loc, logger)
	reconciler := status.NewReconciler(driverRepo, logger)

	// One long-lived automation session per configured platform, created
	// here and reused across every cycle.
	var (
		sessions      []*platform.Session
		synchronizers []platform.Synchronizer
		reporters     []jobs.Reporter
	)
	for _, entry := range []struct {
		name string
		conf config.PlatformConfig
	}{
		{"bolt", cfg.Platforms.Bolt},
		{"uklon", cfg.Platforms.Uklon},
		{"uber", cfg.Platforms.Uber},
	} {
		if entry.conf.Endpoint == "" {
			continue
		}
		session := platform.NewSession(entry.conf.Endpoint, logger)
		remote := platform.NewRemote(entry.name, session)
		sessions = append(sessions, session)
		synchronizers = append(synchronizers, remote)
		reporters = append(reporters, remote)
	}

	var rent platform.RentProvider
	if cfg.Platforms.UaGps.Endpoint != "" {
		session := platform.NewSession(cfg.Platforms.UaGps.Endpoint, logger)
		sessions = append(sessions, session)
		rent = platform.NewRemote("uagps", session)
	}

	jobSet := jobs.New(synchronizers, rent, reporters, reconciler, applicationRepo, logger)

	sched := scheduler.New(locker, loc, logger)
	if err := sched.Register(jobSet.Table()); err != nil {
		sqlDB.Close()
		return nil, err
	}

	ingestServer := ingest.NewServer(cfg.Ingest.Addr, telemetryRepo, telemetryService, logger)

	routes := httpserver.Routes{
		Health:            handlers.NewHealthHandler(),
		Metrics:           observability.MetricsHandler(),
		SubmitApplication: handlers.NewSubmitApplicationHandler(jobSet, logger),
		WeeklyReport:      handlers.NewWeeklyReportHandler(jobSet, logger),
	}
	router := httpserver.NewRouter(routes, middleware.AuthMiddleware(cfg.JWT.Secret))
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		scheduler: sched,
		ingest:    ingestServer,
		server:    server,
		sessions:  sessions,
		db:        sqlDB,
		redis:     redisClient,
		logger:    logger,
	}, nil
}

// Run starts the scheduler and serves the ingest listener and HTTP API until
// the context is cancelled or one surface fails.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.scheduler.Start()
	defer a.scheduler.Stop()

	errCh := make(chan error, 2)
	go func() { errCh <- a.ingest.Run(ctx) }()
	go func() { errCh <- a.server.Run(ctx) }()

	var firstErr error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			cancel()
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close releases resources.
func (a *App) Close() {
	for _, session := range a.sessions {
		session.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
