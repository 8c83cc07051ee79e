package complaint

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

const complaintColumns = `
	id, user_id, category, subject, description, status, resolution, created_at, updated_at`

const feedbackColumns = `id, user_id, rating, comment, created_at`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) CreateComplaint(ctx context.Context, complaint *Complaint) error {
	const query = `
		INSERT INTO complaints (id, user_id, category, subject, description, status, resolution, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		complaint.ID, complaint.UserID, complaint.Category, complaint.Subject,
		complaint.Description, complaint.Status, complaint.Resolution,
		complaint.CreatedAt, complaint.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Complaint")
	}
	return nil
}

func (repository *PostgresRepository) FindComplaintByID(ctx context.Context, id string) (*Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id = $1`

	complaint, err := scanComplaint(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Complaint")
	}
	return complaint, nil
}

func (repository *PostgresRepository) ListComplaints(ctx context.Context, filter Filter, page pagination.Params) ([]*Complaint, int, error) {
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
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, "category = $"+strconv.Itoa(len(args)))
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM complaints WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Complaint")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM complaints WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		complaintColumns, whereClause, page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Complaint")
	}
	defer rows.Close()

	complaints := make([]*Complaint, 0, page.Limit)
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Complaint")
		}
		complaints = append(complaints, complaint)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Complaint")
	}

	return complaints, total, nil
}

func (repository *PostgresRepository) UpdateComplaint(ctx context.Context, complaint *Complaint) error {
	const query = `
		UPDATE complaints
		SET status = $2, resolution = $3, updated_at = $4
		WHERE id = $1`

	complaint.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query, complaint.ID, complaint.Status, complaint.Resolution, complaint.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Complaint")
	}
	return nil
}

func (repository *PostgresRepository) CreateFeedback(ctx context.Context, feedback *Feedback) error {
	const query = `
		INSERT INTO feedback (id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	feedback.CreatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		feedback.ID, feedback.UserID, feedback.Rating, feedback.Comment, feedback.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Feedback")
	}
	return nil
}

func (repository *PostgresRepository) ListFeedback(ctx context.Context, userID *string, page pagination.Params) ([]*Feedback, int, error) {
	whereClause := "TRUE"
	args := []any{}
	if userID != nil {
		whereClause = "user_id = $1"
		args = append(args, *userID)
	}

	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM feedback WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Feedback")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM feedback WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		feedbackColumns, whereClause, page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Feedback")
	}
	defer rows.Close()

	entries := make([]*Feedback, 0, page.Limit)
	for rows.Next() {
		feedback := &Feedback{}
		err := rows.Scan(&feedback.ID, &feedback.UserID, &feedback.Rating, &feedback.Comment, &feedback.CreatedAt)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Feedback")
		}
		entries = append(entries, feedback)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Feedback")
	}

	return entries, total, nil
}

func scanComplaint(row pgx.Row) (*Complaint, error) {
	complaint := &Complaint{}
	err := row.Scan(
		&complaint.ID, &complaint.UserID, &complaint.Category, &complaint.Subject,
		&complaint.Description, &complaint.Status, &complaint.Resolution,
		&complaint.CreatedAt, &complaint.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return complaint, nil
}
