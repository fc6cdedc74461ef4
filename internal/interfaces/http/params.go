package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barberia-api/internal/domain"
)

// idParam lee :id como entero positivo.
func idParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id inválido", domain.ErrInvalidInput)
	}
	return id, nil
}

// queryInt64 lee un parámetro de query entero opcional (0 si falta).
func queryInt64(c *fiber.Ctx, key string) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s inválido", domain.ErrInvalidInput, key)
	}
	return n, nil
}
