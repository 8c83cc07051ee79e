package report

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelhq/hostelhq/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Summarize gathers the headline counts in a single round trip.
func (repository *PostgresRepository) Summarize(ctx context.Context) (*Summary, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'STUDENT' AND deleted_at IS NULL),
			(SELECT COUNT(*) FROM rooms),
			(SELECT COUNT(*) FROM rooms WHERE status = 'AVAILABLE'),
			(SELECT COUNT(*) FROM bookings WHERE status = 'ACTIVE'),
			(SELECT COUNT(*) FROM payments WHERE status = 'PENDING'),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'PENDING'),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'PAID'),
			(SELECT COUNT(*) FROM complaints WHERE status <> 'RESOLVED'),
			(SELECT COUNT(*) FROM leave_applications WHERE status = 'PENDING'),
			(SELECT COUNT(*) FROM refunds WHERE status = 'PENDING'),
			(SELECT COUNT(*) FROM roommate_requests WHERE status = 'PENDING')`

	summary := &Summary{}
	err := repository.pool.QueryRow(ctx, query).Scan(
		&summary.TotalStudents, &summary.TotalRooms, &summary.AvailableRooms,
		&summary.ActiveBookings, &summary.PendingPayments, &summary.PendingAmount,
		&summary.CollectedAmount, &summary.OpenComplaints, &summary.PendingLeave,
		&summary.PendingRefunds, &summary.PendingRoommate,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Report")
	}
	return summary, nil
}
