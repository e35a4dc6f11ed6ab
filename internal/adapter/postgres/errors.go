package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oleglomako/chatwarden/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors, wrapping them with
// the operation name. context.DeadlineExceeded and context.Canceled pass
// through unmapped.
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			return fmt.Errorf("%s: %w", op, domain.ErrAlreadyExists)
		case pgErr.Code == "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		case pgErr.Code == "23502" || pgErr.Code == "23514": // not_null / check violation
			return fmt.Errorf("%s: %w", op, domain.ErrValidation)
		case strings.HasPrefix(pgErr.Code, "08"): // connection exceptions
			return fmt.Errorf("%s: %w: %s", op, domain.ErrUnavailable, pgErr.Message)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
