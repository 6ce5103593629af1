// Package store is the single persistence layer. All cross-request
// coordination (the booking race, conversation dedup) lives here as
// transactions and conditional updates, never as in-process state.
package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorhub-api/internal/apperr"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// translate maps driver-level failures onto the apperr taxonomy so
// constraint violations never leak postgres details to callers.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: duplicate", apperr.ErrConflict)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: referenced row missing", apperr.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%w: constraint check failed", apperr.ErrValidation)
		}
	}
	return err
}
