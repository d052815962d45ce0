package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/daypass-backend/api/routes"
	"github.com/angelmondragon/daypass-backend/internal/cron"
	"github.com/angelmondragon/daypass-backend/internal/sessions"
	"github.com/angelmondragon/daypass-backend/pkg/config"
	"github.com/angelmondragon/daypass-backend/pkg/enums"
	"github.com/angelmondragon/daypass-backend/pkg/env"
	"github.com/angelmondragon/daypass-backend/pkg/instance"
	"github.com/angelmondragon/daypass-backend/pkg/logger"
	"github.com/angelmondragon/daypass-backend/pkg/metrics"
	"github.com/angelmondragon/daypass-backend/pkg/redis"
)

const sweepLockName = "session-sweep"

func main() {
	logg := logger.New(logger.Options{ServiceName: "api", Instance: instance.GetID()})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Instance:    instance.GetID(),
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	cartMetrics := metrics.NewCartMetrics(registry)

	store, err := newSessionStore(cfg, redisClient)
	if err != nil {
		logg.Error(ctx, "failed to create session store", err)
		os.Exit(1)
	}

	manager, err := sessions.NewManager(sessions.ManagerParams{
		Store:   store,
		Logger:  logg,
		Metrics: cartMetrics,
		TTL:     cfg.Session.TTL,
	})
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	cartService, err := sessions.NewCartService(manager, logg, cartMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	scheduler, err := newSweepScheduler(cfg, logg, store, redisClient, cartMetrics, metrics.NewJobMetrics(registry))
	if err != nil {
		logg.Error(ctx, "failed to create session sweeper", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx = logg.WithFields(ctx, map[string]any{
		"env":           cfg.App.Env,
		"addr":          addr,
		"session_store": cfg.Session.StoreKind().String(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:      cfg,
			Logger:      logg,
			Gatherer:    registry,
			HTTPMetrics: metrics.NewHTTPMetrics(registry),
			Redis:       redisClient,
			Sessions:    manager,
			Cart:        cartService,
		}),
	}

	sweepDone := make(chan error, 1)
	go func() {
		sweepDone <- scheduler.Run(ctx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
		stop()
	}

	if err := shutdown(cfg, server, redisClient, sweepDone); err != nil {
		logg.Error(ctx, "api server shutdown incomplete", err)
		exitCode = 1
	} else {
		logg.Info(ctx, "api server stopped")
	}
	os.Exit(exitCode)
}

func newSessionStore(cfg *config.Config, redisClient *redis.Client) (sessions.Store, error) {
	if cfg.Session.StoreKind() == enums.SessionStoreRedis {
		return sessions.NewRedisStore(redisClient)
	}
	return sessions.NewMemoryStore(), nil
}

// newSweepScheduler runs the sweep every interval. With redis, one instance per cycle holds the lock.
func newSweepScheduler(
	cfg *config.Config,
	logg *logger.Logger,
	store sessions.Store,
	redisClient *redis.Client,
	cartMetrics *metrics.CartMetrics,
	jobMetrics *metrics.JobMetrics,
) (*cron.Service, error) {
	sweep, err := sessions.NewSweepJob(sessions.SweepJobParams{
		Store:   store,
		Logger:  logg,
		Metrics: cartMetrics,
	})
	if err != nil {
		return nil, err
	}

	var lock cron.Lock = cron.NewLocalLock()
	if redisClient != nil {
		redisLock, err := cron.NewRedisLock(redisClient, redisClient.LockKey(sweepLockName), 0)
		if err != nil {
			return nil, err
		}
		lock = redisLock
	}

	return cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(sweep),
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: cfg.Session.SweepInterval,
	})
}

func shutdown(cfg *config.Config, server *http.Server, redisClient *redis.Client, sweepDone <-chan error) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)

	select {
	case sweepErr := <-sweepDone:
		if sweepErr != nil && !errors.Is(sweepErr, context.Canceled) {
			err = multierr.Append(err, sweepErr)
		}
	case <-ctx.Done():
		err = multierr.Append(err, ctx.Err())
	}

	if redisClient != nil {
		err = multierr.Append(err, redisClient.Close())
	}
	return err
}
