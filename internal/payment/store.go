// Copyright (c) 2026 HostelHQ. All rights reserved.

package payment

import (
	"context"
	"time"

	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// Filter narrows payment listings. Nil fields are ignored; present fields
// combine with AND.
type Filter struct {
	UserID *string
	Status *string
	Type   *string
}

// Repository provides persistent storage for payments.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Payment, error)
	List(ctx context.Context, filter Filter, page pagination.Params) ([]*Payment, int, error)
	Create(ctx context.Context, payment *Payment) error
	Update(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id string) error
}

// PlanRepository provides persistent storage for installment plans and their
// installments.
type PlanRepository interface {
	// CreatePlan inserts the plan together with all of its installments in one
	// transaction.
	CreatePlan(ctx context.Context, plan *InstallmentPlan) error
	FindPlanByID(ctx context.Context, id string) (*InstallmentPlan, error)
	ListPlansByUser(ctx context.Context, userID string, page pagination.Params) ([]*InstallmentPlan, int, error)
}

// RefundRepository provides persistent storage for refunds.
type RefundRepository interface {
	FindRefundByID(ctx context.Context, id string) (*Refund, error)
	ListRefunds(ctx context.Context, filter Filter, page pagination.Params) ([]*Refund, int, error)
	CreateRefund(ctx context.Context, refund *Refund) error
	UpdateRefund(ctx context.Context, refund *Refund) error
}

// ReminderRepository provides persistent storage for payment reminders.
type ReminderRepository interface {
	ListReminders(ctx context.Context, filter Filter, page pagination.Params) ([]*Reminder, int, error)
	CreateReminder(ctx context.Context, reminder *Reminder) error
	// MarkDueRemindersSent flips SCHEDULED reminders whose send time is at or
	// before now to SENT and returns how many changed.
	MarkDueRemindersSent(ctx context.Context, now time.Time) (int, error)
}
