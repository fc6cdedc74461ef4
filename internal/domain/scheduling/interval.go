// Package scheduling contiene las reglas puras de agenda (servicio de dominio).
package scheduling

import (
	"fmt"
	"time"

	"github.com/jhoicas/barberia-api/internal/domain"
)

// Interval es un intervalo semiabierto [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval construye un intervalo y exige Start < End.
func NewInterval(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if iv.Empty() || end.Before(start) {
		return Interval{}, fmt.Errorf("%w: start_at debe ser anterior a end_at", domain.ErrInvalidInput)
	}
	return iv, nil
}

// Empty indica si el intervalo no tiene duración.
func (iv Interval) Empty() bool {
	return !iv.Start.Before(iv.End)
}

// Overlaps implementa NOT(e1 <= s2 OR s1 >= e2).
// Intervalos contiguos no se solapan y un intervalo vacío no se solapa con nada.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.Empty() || other.Empty() {
		return false
	}
	return !(!iv.End.After(other.Start) || !iv.Start.Before(other.End))
}

// Duration devuelve End - Start.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}
