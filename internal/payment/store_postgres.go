// Copyright (c) 2026 HostelHQ. All rights reserved.

package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelhq/hostelhq/internal/platform/dberr"
	"github.com/hostelhq/hostelhq/pkg/pagination"
)

const paymentColumns = `
	id, user_id, booking_id, amount, type, status, due_date, paid_at, method, reference, created_at, updated_at`

const planColumns = `
	id, payment_id, user_id, total_amount, count, monthly_amount, status, created_at, updated_at`

const installmentColumns = `
	id, plan_id, sequence, amount, due_date, status, paid_at, created_at`

const refundColumns = `
	id, payment_id, user_id, amount, reason, status, note, created_at, updated_at`

const reminderColumns = `
	id, payment_id, user_id, message, send_at, status, sent_at, created_at`

// PostgresRepository implements all of the package's repository interfaces
// using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL payment repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(ctx context.Context, payment *Payment) error {
	const query = `
		INSERT INTO payments (id, user_id, booking_id, amount, type, status, due_date, paid_at, method, reference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		payment.ID, payment.UserID, payment.BookingID, payment.Amount,
		payment.Type, payment.Status, payment.DueDate, payment.PaidAt,
		payment.Method, payment.Reference, payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Payment")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Payment")
	}
	return payment, nil
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Payment, int, error) {
	whereClause, args := filter.conditions()

	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM payments WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Payment")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM payments WHERE %s ORDER BY due_date DESC LIMIT %d OFFSET %d",
		paymentColumns, whereClause, page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Payment")
	}
	defer rows.Close()

	payments := make([]*Payment, 0, page.Limit)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Payment")
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Payment")
	}

	return payments, total, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, payment *Payment) error {
	const query = `
		UPDATE payments
		SET amount = $2, type = $3, status = $4, due_date = $5, paid_at = $6,
		    method = $7, reference = $8, updated_at = $9
		WHERE id = $1`

	payment.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		payment.ID, payment.Amount, payment.Type, payment.Status,
		payment.DueDate, payment.PaidAt, payment.Method, payment.Reference,
		payment.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Payment")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := repository.pool.Exec(ctx, "DELETE FROM payments WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "Payment")
	}
	if result.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Payment")
	}
	return nil
}

func (repository *PostgresRepository) CreatePlan(ctx context.Context, plan *InstallmentPlan) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "InstallmentPlan")
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	const planQuery = `
		INSERT INTO installment_plans (id, payment_id, user_id, total_amount, count, monthly_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = tx.Exec(ctx, planQuery,
		plan.ID, plan.PaymentID, plan.UserID, plan.TotalAmount,
		plan.Count, plan.MonthlyAmount, plan.Status, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "InstallmentPlan")
	}

	const installmentQuery = `
		INSERT INTO installment_payments (id, plan_id, sequence, amount, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, installment := range plan.Installments {
		installment.PlanID = plan.ID
		installment.CreatedAt = now
		_, err = tx.Exec(ctx, installmentQuery,
			installment.ID, installment.PlanID, installment.Sequence,
			installment.Amount, installment.DueDate, installment.Status,
			installment.CreatedAt,
		)
		if err != nil {
			return dberr.Wrap(err, "InstallmentPlan")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "InstallmentPlan")
	}
	return nil
}

func (repository *PostgresRepository) FindPlanByID(ctx context.Context, id string) (*InstallmentPlan, error) {
	planQuery := `SELECT ` + planColumns + ` FROM installment_plans WHERE id = $1`

	plan, err := scanPlan(repository.pool.QueryRow(ctx, planQuery, id))
	if err != nil {
		return nil, dberr.Wrap(err, "InstallmentPlan")
	}

	installmentQuery := `SELECT ` + installmentColumns + ` FROM installment_payments WHERE plan_id = $1 ORDER BY sequence ASC`

	rows, err := repository.pool.Query(ctx, installmentQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "InstallmentPlan")
	}
	defer rows.Close()

	for rows.Next() {
		installment, err := scanInstallment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "InstallmentPlan")
		}
		plan.Installments = append(plan.Installments, installment)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "InstallmentPlan")
	}

	return plan, nil
}

func (repository *PostgresRepository) ListPlansByUser(ctx context.Context, userID string, page pagination.Params) ([]*InstallmentPlan, int, error) {
	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM installment_plans WHERE user_id = $1", userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "InstallmentPlan")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM installment_plans WHERE user_id = $1 ORDER BY created_at DESC LIMIT %d OFFSET %d",
		planColumns, page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(ctx, listQuery, userID)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "InstallmentPlan")
	}
	defer rows.Close()

	plans := make([]*InstallmentPlan, 0, page.Limit)
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "InstallmentPlan")
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "InstallmentPlan")
	}

	return plans, total, nil
}

func (repository *PostgresRepository) CreateRefund(ctx context.Context, refund *Refund) error {
	const query = `
		INSERT INTO refunds (id, payment_id, user_id, amount, reason, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	refund.CreatedAt = now
	refund.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		refund.ID, refund.PaymentID, refund.UserID, refund.Amount,
		refund.Reason, refund.Status, refund.Note, refund.CreatedAt, refund.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Refund")
	}
	return nil
}

func (repository *PostgresRepository) FindRefundByID(ctx context.Context, id string) (*Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE id = $1`

	refund, err := scanRefund(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Refund")
	}
	return refund, nil
}

func (repository *PostgresRepository) ListRefunds(ctx context.Context, filter Filter, page pagination.Params) ([]*Refund, int, error) {
	whereClause, args := filter.conditions()

	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM refunds WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Refund")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM refunds WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		refundColumns, whereClause, page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Refund")
	}
	defer rows.Close()

	refunds := make([]*Refund, 0, page.Limit)
	for rows.Next() {
		refund, err := scanRefund(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Refund")
		}
		refunds = append(refunds, refund)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Refund")
	}

	return refunds, total, nil
}

func (repository *PostgresRepository) UpdateRefund(ctx context.Context, refund *Refund) error {
	const query = `
		UPDATE refunds
		SET status = $2, note = $3, updated_at = $4
		WHERE id = $1`

	refund.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query, refund.ID, refund.Status, refund.Note, refund.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Refund")
	}
	return nil
}

func (repository *PostgresRepository) CreateReminder(ctx context.Context, reminder *Reminder) error {
	const query = `
		INSERT INTO payment_reminders (id, payment_id, user_id, message, send_at, status, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	reminder.CreatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		reminder.ID, reminder.PaymentID, reminder.UserID, reminder.Message,
		reminder.SendAt, reminder.Status, reminder.SentAt, reminder.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "PaymentReminder")
	}
	return nil
}

func (repository *PostgresRepository) ListReminders(ctx context.Context, filter Filter, page pagination.Params) ([]*Reminder, int, error) {
	whereClause, args := filter.conditions()

	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM payment_reminders WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "PaymentReminder")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM payment_reminders WHERE %s ORDER BY send_at ASC LIMIT %d OFFSET %d",
		reminderColumns, whereClause, page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "PaymentReminder")
	}
	defer rows.Close()

	reminders := make([]*Reminder, 0, page.Limit)
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "PaymentReminder")
		}
		reminders = append(reminders, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "PaymentReminder")
	}

	return reminders, total, nil
}

func (repository *PostgresRepository) MarkDueRemindersSent(ctx context.Context, now time.Time) (int, error) {
	const query = `
		UPDATE payment_reminders
		SET status = 'SENT', sent_at = $1
		WHERE status = 'SCHEDULED' AND send_at <= $1`

	result, err := repository.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, dberr.Wrap(err, "PaymentReminder")
	}
	return int(result.RowsAffected()), nil
}

// conditions renders the filter as a WHERE clause with positional args. Status
// and type match the column of whichever table the caller queries.
func (filter Filter) conditions() (string, []any) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, "user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		conditions = append(conditions, "type = $"+strconv.Itoa(len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

func scanPayment(row pgx.Row) (*Payment, error) {
	payment := &Payment{}
	err := row.Scan(
		&payment.ID, &payment.UserID, &payment.BookingID, &payment.Amount,
		&payment.Type, &payment.Status, &payment.DueDate, &payment.PaidAt,
		&payment.Method, &payment.Reference, &payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func scanPlan(row pgx.Row) (*InstallmentPlan, error) {
	plan := &InstallmentPlan{}
	err := row.Scan(
		&plan.ID, &plan.PaymentID, &plan.UserID, &plan.TotalAmount,
		&plan.Count, &plan.MonthlyAmount, &plan.Status, &plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func scanInstallment(row pgx.Row) (*Installment, error) {
	installment := &Installment{}
	err := row.Scan(
		&installment.ID, &installment.PlanID, &installment.Sequence,
		&installment.Amount, &installment.DueDate, &installment.Status,
		&installment.PaidAt, &installment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return installment, nil
}

func scanRefund(row pgx.Row) (*Refund, error) {
	refund := &Refund{}
	err := row.Scan(
		&refund.ID, &refund.PaymentID, &refund.UserID, &refund.Amount,
		&refund.Reason, &refund.Status, &refund.Note, &refund.CreatedAt, &refund.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return refund, nil
}

func scanReminder(row pgx.Row) (*Reminder, error) {
	reminder := &Reminder{}
	err := row.Scan(
		&reminder.ID, &reminder.PaymentID, &reminder.UserID, &reminder.Message,
		&reminder.SendAt, &reminder.Status, &reminder.SentAt, &reminder.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return reminder, nil
}
