package appointment

import (
	"context"

	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción serializada sobre la agenda de los barberos indicados.
// Dos transacciones que comparten un barbero nunca intercalan verificación y escritura.
type TxRunner interface {
	RunForBarbers(ctx context.Context, barberIDs []int64, fn func(appts repository.AppointmentRepository) error) error
}
