package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the SQLSTATE PostgreSQL reports for a broken unique index.
const uniqueViolation = "23505"

// BaseRepository is embedded by every pgx repository.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalServerError("failed to begin transaction", err)
	}
	return tx, nil
}

// BeginReadOnly opens a repeatable-read transaction: every query inside it
// sees the same committed state.
func (r *BaseRepository) BeginReadOnly(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, apperrors.NewInternalServerError("failed to begin read transaction", err)
	}
	return tx, nil
}

func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewInternalServerError("failed to commit transaction", err)
	}
	return nil
}

// Rollback is safe to defer after Commit.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewInternalServerError("failed to roll back transaction", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *BaseRepository) Ping(ctx context.Context) error {
	return r.Pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
