// Copyright (c) 2026 HostelHQ. All rights reserved.

package room

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

const roomColumns = `
	id, number, type, capacity, floor, block, monthly_rent, status, created_at, updated_at`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(ctx context.Context, room *Room) error {
	const query = `
		INSERT INTO rooms (id, number, type, capacity, floor, block, monthly_rent, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if room.CreatedAt.IsZero() {
		room.CreatedAt = now
	}
	room.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		room.ID, room.Number, room.Type, room.Capacity, room.Floor,
		room.Block, room.MonthlyRent, room.Status, room.CreatedAt, room.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Room")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Room")
	}
	return room, nil
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Room, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.Block != nil {
		args = append(args, *filter.Block)
		conditions = append(conditions, "block = $"+strconv.Itoa(len(args)))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		conditions = append(conditions, "type = $"+strconv.Itoa(len(args)))
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM rooms WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Room")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM rooms WHERE %s ORDER BY number ASC LIMIT %d OFFSET %d",
		roomColumns, whereClause, page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Room")
	}
	defer rows.Close()

	rooms := make([]*Room, 0, page.Limit)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Room")
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Room")
	}

	return rooms, total, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, room *Room) error {
	const query = `
		UPDATE rooms
		SET number = $2, type = $3, capacity = $4, floor = $5, block = $6,
		    monthly_rent = $7, status = $8, updated_at = $9
		WHERE id = $1`

	room.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		room.ID, room.Number, room.Type, room.Capacity, room.Floor,
		room.Block, room.MonthlyRent, room.Status, room.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Room")
	}
	return nil
}

func (repository *PostgresRepository) CountBlockingBookings(ctx context.Context, roomID string) (int, error) {
	const query = `
		SELECT COUNT(*) FROM bookings
		WHERE room_id = $1 AND status IN ('ACTIVE', 'CONFIRMED')`

	var count int
	if err := repository.pool.QueryRow(ctx, query, roomID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "Room")
	}
	return count, nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := repository.pool.Exec(ctx, "DELETE FROM rooms WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "Room")
	}
	if result.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Room")
	}
	return nil
}

func scanRoom(row pgx.Row) (*Room, error) {
	room := &Room{}
	err := row.Scan(
		&room.ID, &room.Number, &room.Type, &room.Capacity, &room.Floor,
		&room.Block, &room.MonthlyRent, &room.Status, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return room, nil
}
