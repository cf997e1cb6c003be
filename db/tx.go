// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	txAttempts = 3
	txBackoff  = 100 * time.Millisecond
)

// WithTx runs fn inside a transaction with commit-or-rollback atomicity.
// On a transient failure (dropped connection, serialization conflict) the
// whole body is retried, never individual statements, so fn must be safe
// to re-run from the top.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	var lastErr error
	for attempt := 1; attempt <= txAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(time.Duration(attempt-1) * txBackoff)
			slog.Warn("retrying transaction", "attempt", attempt, "error", lastErr)
		}
		err := runTx(db, fn)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("transaction failed after %d attempts: %w", txAttempts, lastErr)
}

func runTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// isTransient reports whether the error is worth retrying the whole
// transaction for: bad connections, Postgres connection exceptions
// (class 08), serialization failures and deadlocks.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return strings.HasPrefix(code, "08") || code == "40001" || code == "40P01"
	}
	return false
}
