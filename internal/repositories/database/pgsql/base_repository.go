package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB DBTX
}

// wrapError maps driver errors onto the application error sentinels.
func (r *BaseRepository) wrapError(err error, notFoundMsg, failMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(notFoundMsg)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperrors.NewDuplicateError(failMsg+": duplicate key", err)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.InvalidTextRepresentation:
			return apperrors.NewAppError(http.StatusBadRequest, failMsg, err)
		}
	}
	return apperrors.NewAppError(http.StatusInternalServerError, failMsg, err)
}
