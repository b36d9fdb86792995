package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/KasumiMercury/primind-priority-board/internal/config"
	"github.com/KasumiMercury/primind-priority-board/internal/handler"
	"github.com/KasumiMercury/primind-priority-board/internal/health"
	"github.com/KasumiMercury/primind-priority-board/internal/infra/boardrecorder"
	"github.com/KasumiMercury/primind-priority-board/internal/infra/registry"
	"github.com/KasumiMercury/primind-priority-board/internal/infra/sink"
	"github.com/KasumiMercury/primind-priority-board/internal/observability/logging"
	"github.com/KasumiMercury/primind-priority-board/internal/observability/metrics"
	"github.com/KasumiMercury/primind-priority-board/internal/observability/middleware"
	"github.com/KasumiMercury/primind-priority-board/internal/service/board"
	"github.com/KasumiMercury/primind-priority-board/internal/service/category"
	"github.com/KasumiMercury/primind-priority-board/internal/service/desk"
	"github.com/KasumiMercury/primind-priority-board/internal/service/reference"
	"github.com/KasumiMercury/primind-priority-board/internal/service/scheduler"
	"github.com/KasumiMercury/primind-priority-board/internal/service/window"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", slog.String("error", err.Error()))
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	policy, err := config.LoadTrainPolicy(cfg.TrainPolicyFile)
	if err != nil {
		slog.Error("failed to load train policy", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	boardMetrics, err := metrics.NewBoardMetrics()
	if err != nil {
		slog.Error("failed to initialize board metrics", slog.String("error", err.Error()))
		return 1
	}

	// Initialize board recorder (InfluxDB, or noop when disabled or unreachable)
	recorder, err := boardrecorder.NewRecorder(ctx, boardrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize board recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close board recorder", slog.String("error", err.Error()))
		}
	}()

	store, err := initStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store",
			slog.String("event", "store.open.fail"),
			slog.String("backend", cfg.Store.Backend),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close store", slog.String("error", err.Error()))
		}
	}()

	passengers, err := registry.LoadPassengers(ctx, store)
	if err != nil {
		slog.Error("failed to load passengers", slog.String("error", err.Error()))
		return 1
	}

	trains, err := registry.LoadTrains(ctx, store)
	if err != nil {
		slog.Error("failed to load trains", slog.String("error", err.Error()))
		return 1
	}

	classifier := category.NewClassifier(policy)
	resolver := reference.NewResolver(trains, classifier)
	evaluator := window.NewEvaluator(resolver, window.Config{
		Bounds: window.Bounds{
			PassingGraceMinutes:  cfg.Window.PassingGraceMinutes,
			LateToleranceMinutes: cfg.Window.LateToleranceMinutes,
		},
		ImminentTTL: cfg.Window.ImminentCacheTTL,
		ExpiryTTL:   cfg.Window.ExpiryCacheTTL,
		CacheSize:   cfg.Window.EvaluatorCacheSize,
	}, boardMetrics)
	engine := board.NewEngine(passengers, evaluator, cfg.Location)

	reminderSink := sink.NewMemory()
	boardScheduler := scheduler.New(engine, sink.WithLogging(reminderSink), recorder, boardMetrics, scheduler.Config{
		ClockTick:       cfg.Scheduler.ClockTickInterval,
		RecheckInterval: cfg.Scheduler.RecheckInterval,
		RefreshInterval: cfg.Scheduler.RefreshInterval,
		RecheckDebounce: cfg.Scheduler.RecheckDebounce,
	})

	deskService := desk.NewService(passengers, trains, evaluator, boardScheduler, boardMetrics, cfg.Location)

	if err := boardScheduler.Start(ctx); err != nil {
		slog.Error("failed to start scheduler", slog.String("error", err.Error()))
		return 1
	}
	defer boardScheduler.Stop(context.Background())

	// Setup router with observability middleware
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      logging.Module("priority-board"),
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(store, boardScheduler, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	handler.Register(r,
		handler.NewBoardHandler(engine, reminderSink),
		handler.NewPassengerHandler(deskService),
		handler.NewTrainHandler(deskService),
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("addr", cfg.Addr()),
			slog.String("store", store.Backend()),
			slog.String("timezone", cfg.StationTimezone),
			slog.String("home_station", policy.HomeStation),
			slog.Int("passengers", len(passengers.List())),
			slog.Int("trains", len(trains.List())),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
