package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/punchamoorthee/backoffice/internal/domain"
)

// NewPool opens and pings a connection pool. The caller owns it and closes
// it on shutdown.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// classify maps driver errors onto the domain taxonomy.
func classify(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w: %s", op, domain.ErrConflict, pgErr.ConstraintName)
		case "22P02":
			return fmt.Errorf("%s: %w: %s", op, domain.ErrValidation, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrUpstream, err)
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func columnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = ident(c)
	}
	return strings.Join(quoted, ", ")
}

// collect scans every row into T by column name.
func collect[T any](op string, rows pgx.Rows, err error) ([]T, error) {
	if err != nil {
		return nil, classify(op, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

// collectOne scans exactly one row; no rows maps to domain.ErrNotFound.
func collectOne[T any](op string, rows pgx.Rows, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, classify(op, err)
	}
	out, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, classify(op, err)
	}
	return out, nil
}
