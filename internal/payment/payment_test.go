// Copyright (c) 2026 HostelHQ. All rights reserved.

package payment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhq/hostelhq/internal/payment"
)

/*
TestBuildSchedule_RemainderInLeadingInstallments verifies the headline
invariant: 1000 split three ways yields [334, 333, 333], summing to exactly
1000, with due dates spaced one calendar month apart from the start date.
*/
func TestBuildSchedule_RemainderInLeadingInstallments(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	schedule := payment.BuildSchedule(1000, 3, start)
	require.Len(t, schedule, 3)

	// 1. Amounts: the leading installment carries the extra unit
	assert.Equal(t, int64(334), schedule[0].Amount)
	assert.Equal(t, int64(333), schedule[1].Amount)
	assert.Equal(t, int64(333), schedule[2].Amount)

	// 2. Due dates one month apart starting at creation
	assert.Equal(t, start, schedule[0].DueDate)
	assert.Equal(t, start.AddDate(0, 1, 0), schedule[1].DueDate)
	assert.Equal(t, start.AddDate(0, 2, 0), schedule[2].DueDate)

	// 3. All installments start PENDING with ordered sequence numbers
	for i, installment := range schedule {
		assert.Equal(t, i+1, installment.Sequence)
		assert.Equal(t, payment.StatusPending, installment.Status)
	}
}

/*
TestBuildSchedule_SumEqualsTotal checks the exact-sum invariant across a
spread of awkward divisions: the remainder is spread one unit at a time over
the leading installments and the amounts always add up to the total.
*/
func TestBuildSchedule_SumEqualsTotal(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		total int64
		count int
	}{
		{"even_split", 900, 3},
		{"remainder_one", 1001, 2},
		{"prime_total", 997, 5},
		{"single_unit_slices", 7, 7},
		{"large_plan", 123457, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := payment.BuildSchedule(tt.total, tt.count, start)
			require.Len(t, schedule, tt.count)

			base := tt.total / int64(tt.count)
			remainder := tt.total - base*int64(tt.count)

			var sum int64
			for i, installment := range schedule {
				sum += installment.Amount

				expected := base
				if int64(i) < remainder {
					expected++
				}
				assert.Equal(t, expected, installment.Amount)
			}
			assert.Equal(t, tt.total, sum)
		})
	}
}

/*
TestMonthlyAmount verifies the ceiling division.
*/
func TestMonthlyAmount(t *testing.T) {
	assert.Equal(t, int64(334), payment.MonthlyAmount(1000, 3))
	assert.Equal(t, int64(300), payment.MonthlyAmount(900, 3))
	assert.Equal(t, int64(501), payment.MonthlyAmount(1001, 2))
	assert.Equal(t, int64(1), payment.MonthlyAmount(1, 12))
}

/*
TestRefundStatus_Transitions verifies the refund lifecycle rules: one
decision from PENDING, completion only after approval, no moves out of a
terminal state.
*/
func TestRefundStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    payment.RefundStatus
		to      payment.RefundStatus
		allowed bool
	}{
		{"pending_to_approved", payment.RefundPending, payment.RefundApproved, true},
		{"pending_to_rejected", payment.RefundPending, payment.RefundRejected, true},
		{"pending_to_completed", payment.RefundPending, payment.RefundCompleted, false},
		{"approved_to_completed", payment.RefundApproved, payment.RefundCompleted, true},
		{"approved_to_rejected", payment.RefundApproved, payment.RefundRejected, false},
		{"rejected_is_terminal", payment.RefundRejected, payment.RefundApproved, false},
		{"completed_is_terminal", payment.RefundCompleted, payment.RefundPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
