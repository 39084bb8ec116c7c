package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Marketplace-api/internal/domain"
)

// Querier lo que comparten *pgxpool.Pool y pgx.Tx; los repos aceptan cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// isFKViolation 23503: la fila sigue referenciada o la referencia no existe.
func isFKViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isInvalidText 22P02: p. ej. un id que no es UUID.
func isInvalidText(err error) bool {
	return pgCode(err) == "22P02"
}

// notFound indica que la consulta por id no encontró fila (o el id no es un UUID).
func notFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidText(err)
}

// storeErr envuelve fallos de la base como domain.ErrStore, traduciendo las violaciones conocidas.
func storeErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isFKViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	case isInvalidText(err):
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStore, err)
}

// updateStatusIfUnchanged cambia status de from a to en una sola sentencia.
// Sin filas afectadas distingue fila inexistente (ErrNotFound) de estado ya modificado (ErrStaleStatus).
func updateStatusIfUnchanged(ctx context.Context, q Querier, table, what, id, from, to string) error {
	tag, err := q.Exec(ctx,
		"UPDATE "+table+" SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2", id, from, to)
	if err != nil {
		return storeErr("update "+table+" status", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM "+table+" WHERE id = $1)", id).Scan(&exists); err != nil {
		return storeErr("check "+table+" row", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, id)
	}
	return fmt.Errorf("%w: %s %s ya no está en %s", domain.ErrStaleStatus, what, id, from)
}
