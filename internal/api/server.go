// Copyright (c) 2026 HostelHQ. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hostelhq/hostelhq/internal/auth"
	"github.com/hostelhq/hostelhq/internal/booking"
	"github.com/hostelhq/hostelhq/internal/complaint"
	"github.com/hostelhq/hostelhq/internal/leave"
	"github.com/hostelhq/hostelhq/internal/notice"
	"github.com/hostelhq/hostelhq/internal/payment"
	"github.com/hostelhq/hostelhq/internal/platform/config"
	"github.com/hostelhq/hostelhq/internal/platform/constants"
	"github.com/hostelhq/hostelhq/internal/platform/middleware"
	"github.com/hostelhq/hostelhq/internal/platform/ratelimit"
	"github.com/hostelhq/hostelhq/internal/report"
	"github.com/hostelhq/hostelhq/internal/room"
	"github.com/hostelhq/hostelhq/internal/roommate"
	"github.com/hostelhq/hostelhq/internal/user"
)

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups all domain-specific HTTP handler sets.
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles signup, login, logout, and password management.
	Auth *auth.Handler

	// User manages student and admin accounts.
	User *user.Handler

	// Room manages the room inventory.
	Room *room.Handler

	// Booking manages room allocations.
	Booking *booking.Handler

	// Payment covers payments, installment plans, refunds, and reminders.
	Payment *payment.Handler

	// Notice serves announcements and events.
	Notice *notice.Handler

	// Complaint covers complaints and feedback.
	Complaint *complaint.Handler

	// Leave manages leave applications.
	Leave *leave.Handler

	// Roommate manages roommate requests.
	Roommate *roommate.Handler

	// Report serves admin aggregate views.
	Report *report.Handler
}

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, limiter *ratelimit.Limiter,
	verifier middleware.TokenVerifier, loader middleware.IdentityLoader, h Handlers) *Server {

	r := chi.NewRouter()

	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(limiter))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.Authenticate(verifier, loader))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// Domain-specific route groups mounted under the versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.User.Routes())
		api.Mount("/rooms", h.Room.Routes())
		api.Mount("/bookings", h.Booking.Routes())
		api.Mount("/payments", h.Payment.Routes())
		api.Mount("/notices", h.Notice.NoticeRoutes())
		api.Mount("/events", h.Notice.EventRoutes())
		api.Mount("/complaints", h.Complaint.ComplaintRoutes())
		api.Mount("/feedback", h.Complaint.FeedbackRoutes())
		api.Mount("/leave-applications", h.Leave.Routes())
		api.Mount("/roommate-requests", h.Roommate.Routes())
		api.Mount("/reports", h.Report.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
