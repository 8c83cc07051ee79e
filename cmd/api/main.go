// Copyright (c) 2026 HostelHQ. All rights reserved.

// Command api is the entry point for the HostelHQ HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers and background workers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/hostelhq/hostelhq/internal/api"
	"github.com/hostelhq/hostelhq/internal/auth"
	"github.com/hostelhq/hostelhq/internal/booking"
	"github.com/hostelhq/hostelhq/internal/complaint"
	"github.com/hostelhq/hostelhq/internal/leave"
	"github.com/hostelhq/hostelhq/internal/notice"
	"github.com/hostelhq/hostelhq/internal/payment"
	"github.com/hostelhq/hostelhq/internal/platform/config"
	"github.com/hostelhq/hostelhq/internal/platform/constants"
	"github.com/hostelhq/hostelhq/internal/platform/middleware"
	"github.com/hostelhq/hostelhq/internal/platform/migration"
	pgstore "github.com/hostelhq/hostelhq/internal/platform/postgres"
	"github.com/hostelhq/hostelhq/internal/platform/ratelimit"
	redisstore "github.com/hostelhq/hostelhq/internal/platform/redis"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/internal/report"
	"github.com/hostelhq/hostelhq/internal/room"
	"github.com/hostelhq/hostelhq/internal/roommate"
	"github.com/hostelhq/hostelhq/internal/user"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "hostelhq"))
	slog.SetDefault(log)

	log.Info("[HostelHQ] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "hostelhq"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	if cfg.SessionSecret == "" {
		log.Warn("session_secret_unset",
			slog.String("detail", "falling back to the built-in development signing secret"))
	}
	tokenService := sec.NewTokenService(cfg.SessionSecret, constants.TokenIssuer)

	// ── 7. Rate Limiting ──────────────────────────────────────────────────
	stopSweepers := make(chan struct{})
	defer close(stopSweepers)

	limiter := ratelimit.New(constants.RateLimitWindow, constants.RateLimitMaxRequests, constants.RateLimitMaxKeys)
	limiter.StartSweeper(constants.RateLimitSweepInterval, stopSweepers)

	loginThrottle := middleware.NewLoginThrottle(constants.LoginThrottleRPS, constants.LoginThrottleBurst)
	loginThrottle.StartSweeper(constants.RateLimitSweepInterval, constants.RateLimitWindow, stopSweepers)

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	setupTokenRepository := auth.NewSetupTokenRepository(rdb)
	authService := auth.NewService(userRepository, setupTokenRepository, tokenService)
	authHandler := auth.NewHandler(authService, loginThrottle, cfg.IsProduction())

	userService := user.NewService(userRepository, setupTokenRepository)
	userHandler := user.NewHandler(userService)

	roomRepository := room.NewRepository(pool)
	roomService := room.NewService(roomRepository)
	roomHandler := room.NewHandler(roomService)

	bookingRepository := booking.NewRepository(pool)
	bookingService := booking.NewService(bookingRepository, roomRepository)
	bookingHandler := booking.NewHandler(bookingService)

	paymentRepository := payment.NewRepository(pool)
	paymentService := payment.NewService(paymentRepository, paymentRepository, paymentRepository, paymentRepository)
	paymentHandler := payment.NewHandler(paymentService)

	noticeRepository := notice.NewRepository(pool)
	noticeService := notice.NewService(noticeRepository)
	noticeHandler := notice.NewHandler(noticeService)

	complaintRepository := complaint.NewRepository(pool)
	complaintService := complaint.NewService(complaintRepository)
	complaintHandler := complaint.NewHandler(complaintService)

	leaveRepository := leave.NewRepository(pool)
	leaveService := leave.NewService(leaveRepository)
	leaveHandler := leave.NewHandler(leaveService)

	roommateRepository := roommate.NewRepository(pool)
	roommateService := roommate.NewService(roommateRepository)
	roommateHandler := roommate.NewHandler(roommateService)

	reportRepository := report.NewRepository(pool)
	reportHandler := report.NewHandler(reportRepository)

	// ── 10. Background Workers ────────────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	reminderWorker := payment.NewReminderWorker(paymentService, constants.ReminderSweepInterval, log)
	go reminderWorker.Run(workerCtx)

	// ── 11. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		User:      userHandler,
		Room:      roomHandler,
		Booking:   bookingHandler,
		Payment:   paymentHandler,
		Notice:    noticeHandler,
		Complaint: complaintHandler,
		Leave:     leaveHandler,
		Roommate:  roommateHandler,
		Report:    reportHandler,
	}

	server := api.NewServer(cfg, log, limiter, tokenService, authService, handlers)

	// ── 12. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	workerCancel()

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
