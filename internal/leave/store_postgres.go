package leave

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

const applicationColumns = `
	id, user_id, from_date, to_date, reason, status, decision_note, created_at, updated_at`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(ctx context.Context, application *Application) error {
	const query = `
		INSERT INTO leave_applications (id, user_id, from_date, to_date, reason, status, decision_note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	application.CreatedAt = now
	application.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		application.ID, application.UserID, application.FromDate, application.ToDate,
		application.Reason, application.Status, application.DecisionNote,
		application.CreatedAt, application.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "LeaveApplication")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM leave_applications WHERE id = $1`

	application, err := scanApplication(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "LeaveApplication")
	}
	return application, nil
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Application, int, error) {
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
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM leave_applications WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "LeaveApplication")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM leave_applications WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		applicationColumns, whereClause, page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "LeaveApplication")
	}
	defer rows.Close()

	applications := make([]*Application, 0, page.Limit)
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "LeaveApplication")
		}
		applications = append(applications, application)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "LeaveApplication")
	}

	return applications, total, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, application *Application) error {
	const query = `
		UPDATE leave_applications
		SET status = $2, decision_note = $3, updated_at = $4
		WHERE id = $1`

	application.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		application.ID, application.Status, application.DecisionNote, application.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "LeaveApplication")
	}
	return nil
}

func scanApplication(row pgx.Row) (*Application, error) {
	application := &Application{}
	err := row.Scan(
		&application.ID, &application.UserID, &application.FromDate, &application.ToDate,
		&application.Reason, &application.Status, &application.DecisionNote,
		&application.CreatedAt, &application.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return application, nil
}
