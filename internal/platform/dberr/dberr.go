// Copyright (c) 2026 HostelHQ. All rights reserved.

// Package dberr bridges low-level database errors and the application error
// taxonomy.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hostelhq/hostelhq/internal/platform/apperr"
)

// uniqueViolation is the PostgreSQL SQLSTATE for duplicate unique keys.
const uniqueViolation = "23505"

// Wrap inspects a database error and converts it into a meaningful
// [apperr.AppError], hiding storage details from the client.
//
// The resource name feeds the NOT_FOUND message ("Room not found").
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict(resource + " already exists")
	}

	return apperr.Internal(err)
}
