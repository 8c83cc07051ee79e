// Copyright (c) 2026 HostelHQ. All rights reserved.

package payment_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhq/hostelhq/internal/payment"
	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/dberr"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// fakeStore is an in-memory stand-in for the package's repositories.
type fakeStore struct {
	payments map[string]*payment.Payment
	plans    map[string]*payment.InstallmentPlan
	refunds  map[string]*payment.Refund
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		payments: make(map[string]*payment.Payment),
		plans:    make(map[string]*payment.InstallmentPlan),
		refunds:  make(map[string]*payment.Refund),
	}
}

func (s *fakeStore) FindByID(_ context.Context, id string) (*payment.Payment, error) {
	if found, ok := s.payments[id]; ok {
		copied := *found
		return &copied, nil
	}
	return nil, dberr.Wrap(pgx.ErrNoRows, "Payment")
}

func (s *fakeStore) List(_ context.Context, filter payment.Filter, _ pagination.Params) ([]*payment.Payment, int, error) {
	matched := []*payment.Payment{}
	for _, candidate := range s.payments {
		if filter.UserID != nil && candidate.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && string(candidate.Status) != *filter.Status {
			continue
		}
		if filter.Type != nil && string(candidate.Type) != *filter.Type {
			continue
		}
		matched = append(matched, candidate)
	}
	return matched, len(matched), nil
}

func (s *fakeStore) Create(_ context.Context, p *payment.Payment) error {
	s.payments[p.ID] = p
	return nil
}

func (s *fakeStore) Update(_ context.Context, p *payment.Payment) error {
	s.payments[p.ID] = p
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := s.payments[id]; !ok {
		return dberr.Wrap(pgx.ErrNoRows, "Payment")
	}
	delete(s.payments, id)
	return nil
}

func (s *fakeStore) CreatePlan(_ context.Context, plan *payment.InstallmentPlan) error {
	s.plans[plan.ID] = plan
	return nil
}

func (s *fakeStore) FindPlanByID(_ context.Context, id string) (*payment.InstallmentPlan, error) {
	if found, ok := s.plans[id]; ok {
		return found, nil
	}
	return nil, dberr.Wrap(pgx.ErrNoRows, "InstallmentPlan")
}

func (s *fakeStore) ListPlansByUser(_ context.Context, userID string, _ pagination.Params) ([]*payment.InstallmentPlan, int, error) {
	matched := []*payment.InstallmentPlan{}
	for _, plan := range s.plans {
		if plan.UserID == userID {
			matched = append(matched, plan)
		}
	}
	return matched, len(matched), nil
}

func (s *fakeStore) CreateRefund(_ context.Context, refund *payment.Refund) error {
	s.refunds[refund.ID] = refund
	return nil
}

func (s *fakeStore) FindRefundByID(_ context.Context, id string) (*payment.Refund, error) {
	if found, ok := s.refunds[id]; ok {
		copied := *found
		return &copied, nil
	}
	return nil, dberr.Wrap(pgx.ErrNoRows, "Refund")
}

func (s *fakeStore) ListRefunds(_ context.Context, filter payment.Filter, _ pagination.Params) ([]*payment.Refund, int, error) {
	matched := []*payment.Refund{}
	for _, refund := range s.refunds {
		if filter.UserID != nil && refund.UserID != *filter.UserID {
			continue
		}
		matched = append(matched, refund)
	}
	return matched, len(matched), nil
}

func (s *fakeStore) UpdateRefund(_ context.Context, refund *payment.Refund) error {
	s.refunds[refund.ID] = refund
	return nil
}

func (s *fakeStore) ListReminders(_ context.Context, _ payment.Filter, _ pagination.Params) ([]*payment.Reminder, int, error) {
	return nil, 0, nil
}

func (s *fakeStore) CreateReminder(_ context.Context, _ *payment.Reminder) error {
	return nil
}

func (s *fakeStore) MarkDueRemindersSent(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

func newTestService(store *fakeStore) *payment.Service {
	return payment.NewService(store, store, store, store)
}

var (
	studentIdentity = &sec.Identity{ID: "student-1", Role: sec.RoleStudent}
	adminIdentity   = &sec.Identity{ID: "admin-1", Role: sec.RoleAdmin}
)

func seedPayment(store *fakeStore, id, userID string, status payment.Status, amount int64) {
	store.payments[id] = &payment.Payment{
		ID:      id,
		UserID:  userID,
		Amount:  amount,
		Type:    payment.TypeRent,
		Status:  status,
		DueDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

/*
TestService_Delete verifies the deletion invariant: PAID payments are
immutable financial records, PENDING ones can go.
*/
func TestService_Delete(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)
	seedPayment(store, "paid-1", "student-1", payment.StatusPaid, 5000)
	seedPayment(store, "pending-1", "student-1", payment.StatusPending, 5000)

	// 1. Deleting a PAID payment conflicts
	err := service.Delete(context.Background(), "paid-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	// 2. Deleting a PENDING payment succeeds
	assert.NoError(t, service.Delete(context.Background(), "pending-1"))
	_, stillThere := store.payments["pending-1"]
	assert.False(t, stillThere)
}

/*
TestService_List_StudentScoped verifies a student only ever sees their own
payments, whatever filter they send.
*/
func TestService_List_StudentScoped(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)
	seedPayment(store, "own-1", "student-1", payment.StatusPending, 5000)
	seedPayment(store, "own-2", "student-1", payment.StatusPaid, 3000)
	seedPayment(store, "other-1", "student-2", payment.StatusPending, 9000)

	// 1. A student asking for someone else's records still gets their own
	otherID := "student-2"
	results, meta, err := service.List(context.Background(), studentIdentity,
		payment.Filter{UserID: &otherID}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, meta.Total)
	for _, record := range results {
		assert.Equal(t, "student-1", record.UserID)
	}

	// 2. An admin with the same filter sees the other student's records
	results, meta, err = service.List(context.Background(), adminIdentity,
		payment.Filter{UserID: &otherID}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Total)
	assert.Equal(t, "student-2", results[0].UserID)
}

/*
TestService_Update_MarkPaid verifies PENDING to PAID needs a method or
reference and stamps the paid date.
*/
func TestService_Update_MarkPaid(t *testing.T) {
	store := newFakeStore()
	fixedNow := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	service := newTestService(store).WithClock(func() time.Time { return fixedNow })

	seedPayment(store, "pay-1", "student-1", payment.StatusPending, 5000)
	paid := string(payment.StatusPaid)

	// 1. No method or reference: rejected as a validation error
	_, err := service.Update(context.Background(), "pay-1", payment.UpdateInput{Status: &paid})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// 2. With a method the transition succeeds and PaidAt defaults to now
	method := "bank_transfer"
	updated, err := service.Update(context.Background(), "pay-1", payment.UpdateInput{
		Status: &paid,
		Method: &method,
	})
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPaid, updated.Status)
	require.NotNil(t, updated.PaidAt)
	assert.Equal(t, fixedNow, *updated.PaidAt)

	// 3. A settled payment cannot change status again
	cancelled := string(payment.StatusCancelled)
	_, err = service.Update(context.Background(), "pay-1", payment.UpdateInput{Status: &cancelled})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_CreatePlan verifies plan creation: ownership is enforced, the
schedule carries the computed amounts, and the plan starts ACTIVE.
*/
func TestService_CreatePlan(t *testing.T) {
	store := newFakeStore()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	service := newTestService(store).WithClock(func() time.Time { return start })

	seedPayment(store, "pay-1", "student-1", payment.StatusPending, 1000)

	// 1. Another student cannot split someone else's payment
	intruder := &sec.Identity{ID: "student-2", Role: sec.RoleStudent}
	_, err := service.CreatePlan(context.Background(), intruder, payment.PlanInput{
		PaymentID: "pay-1", TotalAmount: 1000, Count: 3,
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// 2. The owner can, and gets the full schedule back
	plan, err := service.CreatePlan(context.Background(), studentIdentity, payment.PlanInput{
		PaymentID: "pay-1", TotalAmount: 1000, Count: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, payment.PlanActive, plan.Status)
	assert.Equal(t, int64(334), plan.MonthlyAmount)
	require.Len(t, plan.Installments, 3)
	assert.Equal(t, start.AddDate(0, 2, 0), plan.Installments[2].DueDate)

	// 3. A PAID payment cannot be split
	seedPayment(store, "pay-2", "student-1", payment.StatusPaid, 1000)
	_, err = service.CreatePlan(context.Background(), studentIdentity, payment.PlanInput{
		PaymentID: "pay-2", TotalAmount: 1000, Count: 2,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_ListPlans_StudentScoped verifies plan listings stay scoped to
the caller: a student only ever gets their own plans, while an admin may list
any user's, defaulting to their own when no user is named.
*/
func TestService_ListPlans_StudentScoped(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	store.plans["plan-1"] = &payment.InstallmentPlan{ID: "plan-1", UserID: "student-1", Status: payment.PlanActive}
	store.plans["plan-2"] = &payment.InstallmentPlan{ID: "plan-2", UserID: "student-2", Status: payment.PlanActive}

	// 1. A student asking for someone else's plans still gets their own
	plans, meta, err := service.ListPlans(context.Background(), studentIdentity,
		"student-2", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Total)
	assert.Equal(t, "student-1", plans[0].UserID)

	// 2. An admin may name any user
	plans, meta, err = service.ListPlans(context.Background(), adminIdentity,
		"student-2", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Total)
	assert.Equal(t, "student-2", plans[0].UserID)

	// 3. An admin naming nobody gets their own (empty) list
	_, meta, err = service.ListPlans(context.Background(), adminIdentity,
		"", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 0, meta.Total)
}

/*
TestService_RequestRefund verifies refund creation rules: the payment must
exist and belong to the requester, and the amount cannot exceed the charge.
*/
func TestService_RequestRefund(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)
	seedPayment(store, "pay-1", "student-1", payment.StatusPaid, 5000)

	// 1. Missing payment
	_, err := service.RequestRefund(context.Background(), studentIdentity, payment.RefundInput{
		PaymentID: "missing", Amount: 100, Reason: "overcharged",
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// 2. Not the owner
	intruder := &sec.Identity{ID: "student-2", Role: sec.RoleStudent}
	_, err = service.RequestRefund(context.Background(), intruder, payment.RefundInput{
		PaymentID: "pay-1", Amount: 100, Reason: "overcharged",
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// 3. Amount above the charge
	_, err = service.RequestRefund(context.Background(), studentIdentity, payment.RefundInput{
		PaymentID: "pay-1", Amount: 6000, Reason: "overcharged",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// 4. Valid request starts PENDING
	refund, err := service.RequestRefund(context.Background(), studentIdentity, payment.RefundInput{
		PaymentID: "pay-1", Amount: 2000, Reason: "left early",
	})
	require.NoError(t, err)
	assert.Equal(t, payment.RefundPending, refund.Status)
	assert.Equal(t, "student-1", refund.UserID)
}

/*
TestService_DecideRefund verifies lifecycle enforcement on administrative
refund decisions.
*/
func TestService_DecideRefund(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)
	seedPayment(store, "pay-1", "student-1", payment.StatusPaid, 5000)

	refund, err := service.RequestRefund(context.Background(), studentIdentity, payment.RefundInput{
		PaymentID: "pay-1", Amount: 2000, Reason: "left early",
	})
	require.NoError(t, err)

	// 1. PENDING cannot jump straight to COMPLETED
	_, err = service.DecideRefund(context.Background(), refund.ID, payment.RefundCompleted, "")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// 2. Approve, then complete
	approved, err := service.DecideRefund(context.Background(), refund.ID, payment.RefundApproved, "ok")
	require.NoError(t, err)
	assert.Equal(t, payment.RefundApproved, approved.Status)

	completed, err := service.DecideRefund(context.Background(), refund.ID, payment.RefundCompleted, "")
	require.NoError(t, err)
	assert.Equal(t, payment.RefundCompleted, completed.Status)

	// 3. Terminal states stay terminal
	_, err = service.DecideRefund(context.Background(), refund.ID, payment.RefundRejected, "")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}
