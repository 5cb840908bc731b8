// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/votesecure/server/engine"
)

// Store is the SQL implementation of engine.Store plus the CRUD surface the
// HTTP layer needs. It speaks the dialect shared by SQLite and PostgreSQL.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// fail logs the driver error server-side and returns the storage sentinel;
// callers never see backend internals.
func fail(op string, err error) error {
	slog.Error("storage failure", "op", op, "error", err)
	return fmt.Errorf("%s: %w", op, engine.ErrStorageUnavailable)
}

// isUniqueViolation matches the duplicate-key messages of both supported
// drivers. Neither exports a stable typed error for this across versions,
// so match on message like the drivers' own test suites do.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") // postgres
}
