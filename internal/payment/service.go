// Copyright (c) 2026 HostelHQ. All rights reserved.

package payment

import (
	"context"
	"time"

	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/pkg/pagination"
	"github.com/hostelhq/hostelhq/pkg/uuidv7"
)

// Service implements the payment, installment, refund, and reminder use cases.
type Service struct {
	payments  Repository
	plans     PlanRepository
	refunds   RefundRepository
	reminders ReminderRepository
	now       func() time.Time
}

// NewService constructs a payment [Service].
func NewService(payments Repository, plans PlanRepository, refunds RefundRepository, reminders ReminderRepository) *Service {
	return &Service{
		payments:  payments,
		plans:     plans,
		refunds:   refunds,
		reminders: reminders,
		now:       time.Now,
	}
}

// WithClock overrides the service clock. For tests.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// CreateInput holds the data for a new payment.
type CreateInput struct {
	UserID    string
	BookingID *string
	Amount    int64
	Type      Type
	DueDate   time.Time
}

// Create records a new charge against a student. Admin only; enforced at the
// route level. New payments start PENDING.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Payment, error) {
	newPayment := &Payment{
		ID:        uuidv7.New(),
		UserID:    input.UserID,
		BookingID: input.BookingID,
		Amount:    input.Amount,
		Type:      input.Type,
		Status:    StatusPending,
		DueDate:   input.DueDate,
	}

	if err := service.payments.Create(ctx, newPayment); err != nil {
		return nil, err
	}
	return newPayment, nil
}

// Get returns one payment. Students can only see their own.
func (service *Service) Get(ctx context.Context, identity *sec.Identity, id string) (*Payment, error) {
	found, err := service.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanAccessOwned(found.UserID) {
		return nil, apperr.Forbidden("You may only view your own payments")
	}
	return found, nil
}

// List returns payments matching the filter. Students always and only get
// their own records, whatever the requested filter says.
func (service *Service) List(ctx context.Context, identity *sec.Identity, filter Filter, page pagination.Params) ([]*Payment, pagination.Meta, error) {
	if !identity.IsAdmin() {
		filter.UserID = &identity.ID
	}

	payments, total, err := service.payments.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return payments, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// UpdateInput holds optional payment edits; nil fields stay unchanged.
type UpdateInput struct {
	Amount    *int64
	Type      *string
	Status    *string
	DueDate   *time.Time
	PaidAt    *time.Time
	Method    *string
	Reference *string
}

// Update edits a payment. Admin only; enforced at the route level.
//
// Moving PENDING to PAID requires a payment method or reference and stamps the
// paid date, defaulting to the current time when none is given. A CANCELLED or
// PAID payment cannot change status again.
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Payment, error) {
	current, err := service.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Method != nil {
		current.Method = *input.Method
	}
	if input.Reference != nil {
		current.Reference = *input.Reference
	}

	if input.Status != nil {
		next := Status(*input.Status)
		switch next {
		case StatusPending, StatusPaid, StatusCancelled:
		default:
			return nil, apperr.ValidationError("Unknown payment status")
		}

		if next != current.Status {
			if current.Status != StatusPending {
				return nil, apperr.Conflict("Payment is already " + string(current.Status))
			}
			if next == StatusPaid {
				if current.Method == "" && current.Reference == "" {
					return nil, apperr.ValidationError("Marking a payment paid requires a method or reference")
				}
				if input.PaidAt != nil {
					current.PaidAt = input.PaidAt
				} else {
					paidAt := service.now()
					current.PaidAt = &paidAt
				}
			}
			current.Status = next
		}
	}

	if input.Amount != nil {
		if current.Status == StatusPaid {
			return nil, apperr.Conflict("A paid payment's amount cannot change")
		}
		current.Amount = *input.Amount
	}
	if input.Type != nil {
		current.Type = Type(*input.Type)
	}
	if input.DueDate != nil {
		current.DueDate = *input.DueDate
	}

	if err := service.payments.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Delete removes a payment. Admin only; enforced at the route level.
//
// A PAID payment is part of the financial record and cannot be deleted.
func (service *Service) Delete(ctx context.Context, id string) error {
	current, err := service.payments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == StatusPaid {
		return apperr.Conflict("A paid payment cannot be deleted")
	}
	return service.payments.Delete(ctx, id)
}

// PlanInput holds the data for a new installment plan.
type PlanInput struct {
	PaymentID   string
	TotalAmount int64
	Count       int
}

// CreatePlan splits a payment into monthly installments starting today. The
// schedule sums to the total exactly, the leading installments carrying the
// rounding remainder. Students may only split their own payments.
func (service *Service) CreatePlan(ctx context.Context, identity *sec.Identity, input PlanInput) (*InstallmentPlan, error) {
	parent, err := service.payments.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if !identity.CanAccessOwned(parent.UserID) {
		return nil, apperr.Forbidden("You may only create installment plans for your own payments")
	}
	if parent.Status != StatusPending {
		return nil, apperr.Conflict("Only a pending payment can be split into installments")
	}

	start := service.now()
	plan := &InstallmentPlan{
		ID:            uuidv7.New(),
		PaymentID:     parent.ID,
		UserID:        parent.UserID,
		TotalAmount:   input.TotalAmount,
		Count:         input.Count,
		MonthlyAmount: MonthlyAmount(input.TotalAmount, input.Count),
		Status:        PlanActive,
		Installments:  BuildSchedule(input.TotalAmount, input.Count, start),
	}
	for _, installment := range plan.Installments {
		installment.ID = uuidv7.New()
	}

	if err := service.plans.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ListPlans returns a user's installment plans. Students always and only get
// their own plans; admins may name any user, defaulting to themselves when no
// user is given.
func (service *Service) ListPlans(ctx context.Context, identity *sec.Identity, userID string, page pagination.Params) ([]*InstallmentPlan, pagination.Meta, error) {
	if !identity.IsAdmin() || userID == "" {
		userID = identity.ID
	}

	plans, total, err := service.plans.ListPlansByUser(ctx, userID, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return plans, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// GetPlan returns an installment plan with its schedule. Students can only see
// their own.
func (service *Service) GetPlan(ctx context.Context, identity *sec.Identity, id string) (*InstallmentPlan, error) {
	plan, err := service.plans.FindPlanByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanAccessOwned(plan.UserID) {
		return nil, apperr.Forbidden("You may only view your own installment plans")
	}
	return plan, nil
}

// RefundInput holds the data for a new refund request.
type RefundInput struct {
	PaymentID string
	Amount    int64
	Reason    string
}

// RequestRefund opens a refund request. The payment must exist and belong to
// the requesting user; requests start PENDING.
func (service *Service) RequestRefund(ctx context.Context, identity *sec.Identity, input RefundInput) (*Refund, error) {
	parent, err := service.payments.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if parent.UserID != identity.ID && !identity.IsAdmin() {
		return nil, apperr.Forbidden("You may only request refunds on your own payments")
	}
	if input.Amount > parent.Amount {
		return nil, apperr.ValidationError("Refund amount exceeds the payment amount")
	}

	refund := &Refund{
		ID:        uuidv7.New(),
		PaymentID: parent.ID,
		UserID:    parent.UserID,
		Amount:    input.Amount,
		Reason:    input.Reason,
		Status:    RefundPending,
	}

	if err := service.refunds.CreateRefund(ctx, refund); err != nil {
		return nil, err
	}
	return refund, nil
}

// ListRefunds returns refund requests. Students always and only see their own.
func (service *Service) ListRefunds(ctx context.Context, identity *sec.Identity, filter Filter, page pagination.Params) ([]*Refund, pagination.Meta, error) {
	if !identity.IsAdmin() {
		filter.UserID = &identity.ID
	}

	refunds, total, err := service.refunds.ListRefunds(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return refunds, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// DecideRefund moves a refund through its lifecycle. Admin only; enforced at
// the route level. Allowed moves are PENDING to APPROVED or REJECTED and
// APPROVED to COMPLETED; anything else is a conflict.
func (service *Service) DecideRefund(ctx context.Context, id string, next RefundStatus, note string) (*Refund, error) {
	current, err := service.refunds.FindRefundByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(next) {
		return nil, apperr.Conflict("Refund cannot move from " + string(current.Status) + " to " + string(next))
	}

	current.Status = next
	if note != "" {
		current.Note = note
	}

	if err := service.refunds.UpdateRefund(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// ReminderInput holds the data for a new payment reminder.
type ReminderInput struct {
	PaymentID string
	Message   string
	SendAt    time.Time
}

// ScheduleReminder creates a reminder for an outstanding payment. Admin only;
// enforced at the route level.
func (service *Service) ScheduleReminder(ctx context.Context, input ReminderInput) (*Reminder, error) {
	parent, err := service.payments.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}

	reminder := &Reminder{
		ID:        uuidv7.New(),
		PaymentID: parent.ID,
		UserID:    parent.UserID,
		Message:   input.Message,
		SendAt:    input.SendAt,
		Status:    ReminderScheduled,
	}

	if err := service.reminders.CreateReminder(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// ListReminders returns payment reminders. Admin only; enforced at the route
// level.
func (service *Service) ListReminders(ctx context.Context, filter Filter, page pagination.Params) ([]*Reminder, pagination.Meta, error) {
	reminders, total, err := service.reminders.ListReminders(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return reminders, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// DispatchDueReminders marks reminders whose send time has passed as SENT and
// returns how many were flipped. Called by the background sweeper.
func (service *Service) DispatchDueReminders(ctx context.Context) (int, error) {
	return service.reminders.MarkDueRemindersSent(ctx, service.now())
}
