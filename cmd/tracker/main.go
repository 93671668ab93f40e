package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/ramadan-tracker/internal/adapters/cache"
	"github.com/comitanigiacomo/ramadan-tracker/internal/adapters/calendar"
	adapterHTTP "github.com/comitanigiacomo/ramadan-tracker/internal/adapters/handler/http"
	"github.com/comitanigiacomo/ramadan-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/ramadan-tracker/internal/config"
	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
	"github.com/comitanigiacomo/ramadan-tracker/internal/core/gesture"
	"github.com/comitanigiacomo/ramadan-tracker/internal/core/services"
	"github.com/comitanigiacomo/ramadan-tracker/internal/core/workers"
)

// @title       Ramadan Tracker API
// @version     1.0
// @description Local host for the 30-day tracker UI: pointer events in, snapshots out.
// @BasePath    /api/v1
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("tracker stopped with error", "error", err)
		os.Exit(1)
	}
}

// storage bundles the selected backend with its health check and cleanup.
type storage struct {
	store domain.KeyValueStore
	ping  func(ctx context.Context) error
	close func() error
}

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		logger.Warn("memory backend selected, history will not survive a restart")
		return &storage{store: repository.NewInMemoryKVStore(), close: noop}, nil

	case config.BackendFile:
		store, err := repository.NewFileKVStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		logger.Info("using file storage", "dir", cfg.DataDir)
		return &storage{store: store, close: noop}, nil

	case config.BackendRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Info("using redis storage", "host", cfg.Redis.Host, "db", cfg.Redis.DB)
		return &storage{
			store: repository.NewRedisKVStore(client, cfg.Redis.KeyPrefix),
			ping:  func(ctx context.Context) error { return client.Ping(ctx).Err() },
			close: client.Close,
		}, nil

	case config.BackendPostgres:
		db, err := sqlx.ConnectContext(ctx, "pgx", cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("postgres connect failed: %w", err)
		}
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		store := repository.NewPostgresKVStore(db, cfg.Postgres.Table)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("using postgres storage", "host", cfg.Postgres.Host, "table", cfg.Postgres.Table)
		return &storage{store: store, ping: db.PingContext, close: db.Close}, nil
	}

	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	startTime := time.Now()
	gin.SetMode(cfg.GinMode)

	st, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			logger.Warn("closing storage failed", "error", err)
		}
	}()

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	broadcaster := workers.NewRefreshBroadcaster(logger)
	workersDone := broadcaster.Start(workerCtx)

	tracker := services.NewTracker(ctx, services.TrackerDependencies{
		Store:     st.store,
		Calendar:  calendar.NewTabularCalendar(nil),
		Sink:      broadcaster,
		Scheduler: gesture.RealScheduler{},
		Logger:    logger,
	})

	today := tracker.Snapshot(ctx)
	logger.Info("tracker ready", "version", config.Version, "year", today.Year, "backend", cfg.Backend)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		TrackerHandler: adapterHTTP.NewTrackerHandler(tracker),
		EventsHandler:  adapterHTTP.NewEventsHandler(broadcaster),
		Ping:           st.ping,
		Backend:        cfg.Backend,
		StartTime:      startTime,
	})

	// No WriteTimeout: the event stream is long-lived.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", "http://"+cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("stop signal received, shutting down")
	}

	// Closing subscriber channels first lets open event streams return.
	stopWorkers()
	<-workersDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
