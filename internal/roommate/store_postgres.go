package roommate

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

const requestColumns = `
	id, user_id, preferred_room, notes, status, matched_with, created_at, updated_at`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(ctx context.Context, request *Request) error {
	const query = `
		INSERT INTO roommate_requests (id, user_id, preferred_room, notes, status, matched_with, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		request.ID, request.UserID, request.PreferredRoom, request.Notes,
		request.Status, request.MatchedWith, request.CreatedAt, request.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "RoommateRequest")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Request, error) {
	query := `SELECT ` + requestColumns + ` FROM roommate_requests WHERE id = $1`

	request, err := scanRequest(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "RoommateRequest")
	}
	return request, nil
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Request, int, error) {
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

	whereClause := strings.Join(conditions, " AND ")

	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM roommate_requests WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "RoommateRequest")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM roommate_requests WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		requestColumns, whereClause, page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "RoommateRequest")
	}
	defer rows.Close()

	requests := make([]*Request, 0, page.Limit)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "RoommateRequest")
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "RoommateRequest")
	}

	return requests, total, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, request *Request) error {
	const query = `
		UPDATE roommate_requests
		SET preferred_room = $2, notes = $3, status = $4, matched_with = $5, updated_at = $6
		WHERE id = $1`

	request.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		request.ID, request.PreferredRoom, request.Notes, request.Status,
		request.MatchedWith, request.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "RoommateRequest")
	}
	return nil
}

func scanRequest(row pgx.Row) (*Request, error) {
	request := &Request{}
	err := row.Scan(
		&request.ID, &request.UserID, &request.PreferredRoom, &request.Notes,
		&request.Status, &request.MatchedWith, &request.CreatedAt, &request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return request, nil
}
