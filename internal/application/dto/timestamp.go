package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/barberia-api/internal/domain"
)

// Formatos aceptados en cuerpos y query strings. Los que no traen zona se interpretan en UTC
// (el panel envía valores de <input type="datetime-local">).
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// TimestampPrecision resolución con la que se guardan los instantes (SQLite guarda milisegundos,
// PostgreSQL microsegundos). Lo que se valida es exactamente lo que se persiste.
const TimestampPrecision = time.Millisecond

// ParseTimestamp interpreta un instante ISO-8601 truncado a TimestampPrecision.
// Devuelve ErrInvalidInput si no coincide con ningún formato.
func ParseTimestamp(field, raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC().Truncate(TimestampPrecision), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s no es una fecha ISO-8601 válida", domain.ErrInvalidInput, field)
}

// ParseOptionalTimestamp como ParseTimestamp pero devuelve nil si raw está vacío.
func ParseOptionalTimestamp(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := ParseTimestamp(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
