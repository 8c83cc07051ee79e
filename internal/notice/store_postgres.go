package notice

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelhq/hostelhq/internal/platform/dberr"
	"github.com/hostelhq/hostelhq/pkg/pagination"
)

const noticeColumns = `id, title, body, audience, author_id, created_at, updated_at`

const eventColumns = `id, title, description, venue, starts_at, author_id, created_at`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) CreateNotice(ctx context.Context, notice *Notice) error {
	const query = `
		INSERT INTO notices (id, title, body, audience, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := repository.pool.Exec(ctx, query,
		notice.ID, notice.Title, notice.Body, notice.Audience,
		notice.AuthorID, notice.CreatedAt, notice.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Notice")
	}
	return nil
}

func (repository *PostgresRepository) FindNoticeByID(ctx context.Context, id string) (*Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices WHERE id = $1`

	notice := &Notice{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&notice.ID, &notice.Title, &notice.Body, &notice.Audience,
		&notice.AuthorID, &notice.CreatedAt, &notice.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Notice")
	}
	return notice, nil
}

func (repository *PostgresRepository) ListNotices(ctx context.Context, audience *string, page pagination.Params) ([]*Notice, int, error) {
	whereClause := "TRUE"
	args := []any{}
	if audience != nil {
		whereClause = "audience = $1"
		args = append(args, *audience)
	}

	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM notices WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Notice")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM notices WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		noticeColumns, whereClause, page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Notice")
	}
	defer rows.Close()

	notices := make([]*Notice, 0, page.Limit)
	for rows.Next() {
		notice := &Notice{}
		err := rows.Scan(
			&notice.ID, &notice.Title, &notice.Body, &notice.Audience,
			&notice.AuthorID, &notice.CreatedAt, &notice.UpdatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Notice")
		}
		notices = append(notices, notice)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Notice")
	}

	return notices, total, nil
}

func (repository *PostgresRepository) DeleteNotice(ctx context.Context, id string) error {
	result, err := repository.pool.Exec(ctx, "DELETE FROM notices WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "Notice")
	}
	if result.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Notice")
	}
	return nil
}

func (repository *PostgresRepository) CreateEvent(ctx context.Context, event *Event) error {
	const query = `
		INSERT INTO events (id, title, description, venue, starts_at, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := repository.pool.Exec(ctx, query,
		event.ID, event.Title, event.Description, event.Venue,
		event.StartsAt, event.AuthorID, event.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Event")
	}
	return nil
}

func (repository *PostgresRepository) FindEventByID(ctx context.Context, id string) (*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event := &Event{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&event.ID, &event.Title, &event.Description, &event.Venue,
		&event.StartsAt, &event.AuthorID, &event.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Event")
	}
	return event, nil
}

func (repository *PostgresRepository) ListEvents(ctx context.Context, page pagination.Params) ([]*Event, int, error) {
	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM events").Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Event")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM events ORDER BY starts_at ASC LIMIT %d OFFSET %d",
		eventColumns, page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(ctx, listQuery)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Event")
	}
	defer rows.Close()

	events := make([]*Event, 0, page.Limit)
	for rows.Next() {
		event := &Event{}
		err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.Venue,
			&event.StartsAt, &event.AuthorID, &event.CreatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Event")
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Event")
	}

	return events, total, nil
}

func (repository *PostgresRepository) DeleteEvent(ctx context.Context, id string) error {
	result, err := repository.pool.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "Event")
	}
	if result.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Event")
	}
	return nil
}
