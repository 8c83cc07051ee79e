// Copyright (c) 2026 HostelHQ. All rights reserved.

package auth

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

// userColumns is the canonical select list shared by every user query.
const userColumns = `
	id, email, password_hash, name, role, phone,
	student_number, room_number, course, year,
	guardian_name, guardian_phone, address,
	must_change_password, created_at, updated_at`

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates the PostgreSQL implementation of [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new account row.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (
			id, email, password_hash, name, role, phone,
			student_number, room_number, course, year,
			guardian_name, guardian_phone, address,
			must_change_password, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Role,
		user.Phone,
		user.StudentNumber,
		user.RoomNumber,
		user.Course,
		user.Year,
		user.GuardianName,
		user.GuardianPhone,
		user.Address,
		user.MustChangePassword,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

// FindByEmail retrieves an account by its normalized email address.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL`

	row := repository.pool.QueryRow(ctx, query, email)
	user, err := scanUser(row)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

// FindByID retrieves an account by its unique ID.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`

	row := repository.pool.QueryRow(ctx, query, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

// List returns accounts matching the filter, newest first, plus the total count.
//
// # Filter Composition
//
// Each present filter field contributes one AND clause; absent fields
// contribute nothing. No dynamic field names, only positional parameters.
func (repository *PostgresUserRepository) List(ctx context.Context, filter UserFilter, page pagination.Params) ([]*User, int, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := []any{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		conditions = append(conditions, "role = $"+strconv.Itoa(len(args)))
	}
	if filter.RoomNumber != nil {
		args = append(args, *filter.RoomNumber)
		conditions = append(conditions, "room_number = $"+strconv.Itoa(len(args)))
	}
	if filter.Search != nil {
		args = append(args, "%"+strings.ToLower(*filter.Search)+"%")
		placeholder := "$" + strconv.Itoa(len(args))
		conditions = append(conditions, "(LOWER(name) LIKE "+placeholder+" OR email LIKE "+placeholder+")")
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) FROM users WHERE " + whereClause
	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM users WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		userColumns, whereClause, page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	defer rows.Close()

	users := make([]*User, 0, page.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "User")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	return users, total, nil
}

// Update persists mutable profile fields.
func (repository *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	const query = `
		UPDATE users
		SET name = $2, phone = $3, student_number = $4, room_number = $5,
		    course = $6, year = $7, guardian_name = $8, guardian_phone = $9,
		    address = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Phone,
		user.StudentNumber,
		user.RoomNumber,
		user.Course,
		user.Year,
		user.GuardianName,
		user.GuardianPhone,
		user.Address,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

// UpdatePassword replaces only the password hash and forced-change flag.
func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, newHash string, mustChange bool) error {
	const query = `
		UPDATE users
		SET password_hash = $2, must_change_password = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL`

	_, err := repository.pool.Exec(ctx, query, userID, newHash, mustChange, time.Now())
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

// SoftDelete marks an account as deleted.
func (repository *PostgresUserRepository) SoftDelete(ctx context.Context, id string) error {
	const query = "UPDATE users SET deleted_at = $2 WHERE id = $1"
	_, err := repository.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	return nil
}

// scanUser maps one row onto a [User].
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.Phone,
		&user.StudentNumber,
		&user.RoomNumber,
		&user.Course,
		&user.Year,
		&user.GuardianName,
		&user.GuardianPhone,
		&user.Address,
		&user.MustChangePassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
