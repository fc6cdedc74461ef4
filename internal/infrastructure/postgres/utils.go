package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/barberia-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeExclusionViolation  = "23P01"
	codeNumericOutOfRange   = "22003"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapError traduce violaciones de restricciones a errores de dominio y envuelve el resto con op.
// 23P01 es la restricción de exclusión de la agenda: dos citas 'scheduled' solapadas.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch pgCode(err) {
	case codeExclusionViolation:
		return domain.ErrConflict
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, op)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: referencia inexistente (%s)", domain.ErrNotFound, op)
	case codeCheckViolation, codeNumericOutOfRange:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
