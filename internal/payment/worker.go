// Copyright (c) 2026 HostelHQ. All rights reserved.

package payment

import (
	"context"
	"log/slog"
	"time"
)

// ReminderWorker periodically dispatches payment reminders that have come due.
type ReminderWorker struct {
	service  *Service
	interval time.Duration
	logger   *slog.Logger
}

// NewReminderWorker constructs a [ReminderWorker].
func NewReminderWorker(service *Service, interval time.Duration, logger *slog.Logger) *ReminderWorker {
	return &ReminderWorker{service: service, interval: interval, logger: logger}
}

// Run sweeps on the configured interval until the context is cancelled.
func (worker *ReminderWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(worker.interval)
	defer ticker.Stop()

	worker.logger.Info("reminder_worker_started", slog.Duration("interval", worker.interval))

	for {
		select {
		case <-ctx.Done():
			worker.logger.Info("reminder_worker_stopped")
			return
		case <-ticker.C:
			worker.sweep(ctx)
		}
	}
}

func (worker *ReminderWorker) sweep(ctx context.Context) {
	sent, err := worker.service.DispatchDueReminders(ctx)
	if err != nil {
		worker.logger.Error("reminder_sweep_failed", slog.Any("error", err))
		return
	}
	if sent > 0 {
		worker.logger.Info("reminders_dispatched", slog.Int("count", sent))
	}
}
