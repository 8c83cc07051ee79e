// Copyright (c) 2026 HostelHQ. All rights reserved.

package booking

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

const bookingColumns = `
	id, user_id, room_id, status, start_date, end_date, notes, created_at, updated_at`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(ctx context.Context, booking *Booking) error {
	const query = `
		INSERT INTO bookings (id, user_id, room_id, status, start_date, end_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		booking.ID, booking.UserID, booking.RoomID, booking.Status,
		booking.StartDate, booking.EndDate, booking.Notes,
		booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Booking")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Booking")
	}
	return booking, nil
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Booking, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, "user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.RoomID != nil {
		args = append(args, *filter.RoomID)
		conditions = append(conditions, "room_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM bookings WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Booking")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM bookings WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		bookingColumns, whereClause, page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Booking")
	}
	defer rows.Close()

	bookings := make([]*Booking, 0, page.Limit)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Booking")
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Booking")
	}

	return bookings, total, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, booking *Booking) error {
	const query = `
		UPDATE bookings
		SET status = $2, start_date = $3, end_date = $4, notes = $5, updated_at = $6
		WHERE id = $1`

	booking.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		booking.ID, booking.Status, booking.StartDate, booking.EndDate,
		booking.Notes, booking.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Booking")
	}
	return nil
}

func (repository *PostgresRepository) CountBlocking(ctx context.Context, roomID, excludeID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE room_id = $1 AND status IN ('ACTIVE', 'CONFIRMED')`
	args := []any{roomID}

	if excludeID != "" {
		args = append(args, excludeID)
		query += " AND id <> $2"
	}

	var count int
	if err := repository.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "Booking")
	}
	return count, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	booking := &Booking{}
	err := row.Scan(
		&booking.ID, &booking.UserID, &booking.RoomID, &booking.Status,
		&booking.StartDate, &booking.EndDate, &booking.Notes,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return booking, nil
}
