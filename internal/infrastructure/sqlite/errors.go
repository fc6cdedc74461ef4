package sqlite

import (
	"fmt"
	"strings"

	"github.com/jhoicas/barberia-api/internal/domain"
)

// mapError traduce violaciones de restricciones de SQLite a errores de dominio.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: referencia inexistente", domain.ErrNotFound)
	case strings.Contains(msg, "CHECK constraint failed"):
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return err
}
