package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barberia-api/internal/domain"
)

// Las cantidades se guardan como NUMERIC(14, 3): hasta 11 dígitos enteros y 3 decimales.
const qtyScale = 3

var maxQty = decimal.New(1, 11)

// validateQty rechaza cantidades que el almacén tendría que redondear o no podría guardar.
func validateQty(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(qtyScale)) {
		return fmt.Errorf("%w: %s admite como máximo %d decimales", domain.ErrInvalidInput, field, qtyScale)
	}
	if d.Abs().GreaterThanOrEqual(maxQty) {
		return fmt.Errorf("%w: %s fuera de rango", domain.ErrInvalidInput, field)
	}
	return nil
}
