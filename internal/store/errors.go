// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the PostgreSQL data access layer for posts,
// categories, and the association between them. Every store receives its
// *sql.DB at construction time.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a lookup by id or slug matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a database constraint,
	// most commonly a duplicate name or slug.
	ErrConflict = errors.New("constraint violation")

	// ErrUnavailable wraps every other failure talking to the database.
	ErrUnavailable = errors.New("store unavailable")
)

// classify maps a driver error onto the store error taxonomy. The original
// error stays in the chain for logging.
func classify(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	// SQLSTATE class 23 covers integrity constraint violations.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return fmt.Errorf("%s: %w: %s", op, ErrConflict, constraintMessage(pgErr))
	}

	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// constraintMessage returns a short description of a constraint failure
// that is safe to show to API callers.
func constraintMessage(pgErr *pgconn.PgError) string {
	if pgErr.Detail != "" {
		return pgErr.Detail
	}
	if pgErr.ConstraintName != "" {
		return "violates " + pgErr.ConstraintName
	}
	return pgErr.Message
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is (or wraps) ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
