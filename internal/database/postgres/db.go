package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// DBTX is the subset of pgxpool.Pool the repositories use.
// pgxmock's pool satisfies it in unit tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// parseNumeric reads a NUMERIC column selected as text
func parseNumeric(column, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %s: %w", ErrMsgFailedToParseNumeric, column, err)
	}
	return d, nil
}

// numericArg renders a decimal for a $n::text::numeric placeholder.
// Numerics travel as text so no precision is lost to float conversion.
func numericArg(d decimal.Decimal) string {
	return d.String()
}

// mapCheckViolation turns CHECK constraint failures into domain errors
func mapCheckViolation(err error, target error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeCheckViolation {
		return fmt.Errorf("%w: %s", target, pgErr.ConstraintName)
	}
	return err
}

func nullableID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}
