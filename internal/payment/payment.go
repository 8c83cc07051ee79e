// Copyright (c) 2026 HostelHQ. All rights reserved.

// Package payment governs the money side of the hostel: payments, installment
// plans, refunds, and reminders. All amounts are integer minor units.
package payment

import "time"

// Status is the lifecycle state of a payment.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

// Type classifies what a payment is for.
type Type string

const (
	TypeRent    Type = "RENT"
	TypeDeposit Type = "DEPOSIT"
	TypeFee     Type = "FEE"
	TypeFine    Type = "FINE"
	TypeOther   Type = "OTHER"
)

// Types lists the accepted payment types for validation.
func Types() []string {
	return []string{string(TypeRent), string(TypeDeposit), string(TypeFee), string(TypeFine), string(TypeOther)}
}

// Payment is a single charge against a student.
type Payment struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	BookingID *string    `json:"booking_id,omitempty"`
	Amount    int64      `json:"amount"`
	Type      Type       `json:"type"`
	Status    Status     `json:"status"`
	DueDate   time.Time  `json:"due_date"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	Method    string     `json:"method,omitempty"`
	Reference string     `json:"reference,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PlanStatus is the lifecycle state of an installment plan.
type PlanStatus string

const (
	PlanActive    PlanStatus = "ACTIVE"
	PlanCompleted PlanStatus = "COMPLETED"
	PlanCancelled PlanStatus = "CANCELLED"
)

// InstallmentPlan splits a payment's total into monthly installments.
type InstallmentPlan struct {
	ID            string         `json:"id"`
	PaymentID     string         `json:"payment_id"`
	UserID        string         `json:"user_id"`
	TotalAmount   int64          `json:"total_amount"`
	Count         int            `json:"count"`
	MonthlyAmount int64          `json:"monthly_amount"`
	Status        PlanStatus     `json:"status"`
	Installments  []*Installment `json:"installments,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Installment is one scheduled slice of an installment plan.
type Installment struct {
	ID        string     `json:"id"`
	PlanID    string     `json:"plan_id"`
	Sequence  int        `json:"sequence"`
	Amount    int64      `json:"amount"`
	DueDate   time.Time  `json:"due_date"`
	Status    Status     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// MonthlyAmount is the headline per-installment figure for a plan: the ceiling
// of total/count, which is what the leading installment of [BuildSchedule]
// charges.
func MonthlyAmount(total int64, count int) int64 {
	return (total + int64(count) - 1) / int64(count)
}

// BuildSchedule computes the installment amounts and due dates for a plan.
// The rounding remainder of total/count is spread one unit at a time over the
// leading installments, so 1000 in 3 slices yields 334, 333, 333: the slices
// sum to the total exactly and no two differ by more than one unit. Due dates
// are calendar months from the start date: the first installment is due at
// start, installment n at start plus n-1 months.
func BuildSchedule(total int64, count int, start time.Time) []*Installment {
	base := total / int64(count)
	remainder := total - base*int64(count)

	schedule := make([]*Installment, count)
	for n := 1; n <= count; n++ {
		amount := base
		if int64(n) <= remainder {
			amount++
		}
		schedule[n-1] = &Installment{
			Sequence: n,
			Amount:   amount,
			DueDate:  start.AddDate(0, n-1, 0),
			Status:   StatusPending,
		}
	}
	return schedule
}

// RefundStatus is the lifecycle state of a refund request.
type RefundStatus string

const (
	RefundPending   RefundStatus = "PENDING"
	RefundApproved  RefundStatus = "APPROVED"
	RefundRejected  RefundStatus = "REJECTED"
	RefundCompleted RefundStatus = "COMPLETED"
)

// CanTransitionTo reports whether a refund may move to the next status.
// Requests are decided once (PENDING to APPROVED or REJECTED) and an approved
// refund is closed out by completing it.
func (status RefundStatus) CanTransitionTo(next RefundStatus) bool {
	switch status {
	case RefundPending:
		return next == RefundApproved || next == RefundRejected
	case RefundApproved:
		return next == RefundCompleted
	}
	return false
}

// Refund is a student's request to get money back on a payment.
type Refund struct {
	ID        string       `json:"id"`
	PaymentID string       `json:"payment_id"`
	UserID    string       `json:"user_id"`
	Amount    int64        `json:"amount"`
	Reason    string       `json:"reason"`
	Status    RefundStatus `json:"status"`
	Note      string       `json:"note,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ReminderStatus is the delivery state of a payment reminder.
type ReminderStatus string

const (
	ReminderScheduled ReminderStatus = "SCHEDULED"
	ReminderSent      ReminderStatus = "SENT"
)

// Reminder is an admin-scheduled nudge about an outstanding payment.
type Reminder struct {
	ID        string         `json:"id"`
	PaymentID string         `json:"payment_id"`
	UserID    string         `json:"user_id"`
	Message   string         `json:"message"`
	SendAt    time.Time      `json:"send_at"`
	Status    ReminderStatus `json:"status"`
	SentAt    *time.Time     `json:"sent_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
