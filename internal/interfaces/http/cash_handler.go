package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barberia-api/internal/application/cash"
	"github.com/jhoicas/barberia-api/internal/application/dto"
	"github.com/jhoicas/barberia-api/pkg/logger"
)

// CashHandler maneja el libro de caja.
type CashHandler struct {
	uc  *cash.UseCase
	log *logger.Logger
}

// NewCashHandler construye el handler de caja.
func NewCashHandler(uc *cash.UseCase, log *logger.Logger) *CashHandler {
	return &CashHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar movimientos de caja
// @Tags         cash
// @Produce      json
// @Security     Bearer
// @Param        from  query  string  false  "Desde (ISO-8601, inclusivo)"
// @Param        to    query  string  false  "Hasta (ISO-8601, inclusivo)"
// @Success      200  {array}  dto.CashMovementResponse
// @Router       /api/cash [get]
func (h *CashHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar movimiento de caja
// @Tags         cash
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateCashMovementRequest  true  "type (in|out), amount_cents > 0"
// @Success      201  {object}  dto.CashMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash [post]
func (h *CashHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCashMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Summary godoc
// @Summary      Resumen de caja
// @Tags         cash
// @Produce      json
// @Security     Bearer
// @Param        from  query  string  false  "Desde (ISO-8601, inclusivo)"
// @Param        to    query  string  false  "Hasta (ISO-8601, inclusivo)"
// @Success      200  {object}  dto.CashSummaryResponse
// @Router       /api/cash/summary [get]
func (h *CashHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summarize(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Extracto de caja en PDF
// @Tags         cash
// @Produce      application/pdf
// @Security     Bearer
// @Param        from  query  string  false  "Desde (ISO-8601, inclusivo)"
// @Param        to    query  string  false  "Hasta (ISO-8601, inclusivo)"
// @Success      200  {file}  binary
// @Router       /api/cash/report.pdf [get]
func (h *CashHandler) Report(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.StatementPDF(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
