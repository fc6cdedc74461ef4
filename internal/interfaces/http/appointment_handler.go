package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barberia-api/internal/application/appointment"
	"github.com/jhoicas/barberia-api/internal/application/dto"
	"github.com/jhoicas/barberia-api/pkg/logger"
)

// AppointmentHandler maneja la agenda.
type AppointmentHandler struct {
	uc  *appointment.UseCase
	log *logger.Logger
}

// NewAppointmentHandler construye el handler de citas.
func NewAppointmentHandler(uc *appointment.UseCase, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar citas
// @Description  Filtra por rango (from/to sobre start_at) y por barbero o cliente. Máximo 500.
// @Tags         appointments
// @Produce      json
// @Security     Bearer
// @Param        from       query  string  false  "Desde (ISO-8601)"
// @Param        to         query  string  false  "Hasta (ISO-8601)"
// @Param        barber_id  query  int     false  "Barbero"
// @Param        client_id  query  int     false  "Cliente"
// @Success      200  {array}  dto.AppointmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	barberID, err := queryInt64(c, "barber_id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	clientID, err := queryInt64(c, "client_id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	q := dto.AppointmentListQuery{
		From:     c.Query("from"),
		To:       c.Query("to"),
		BarberID: barberID,
		ClientID: clientID,
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener cita
// @Tags         appointments
// @Produce      json
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [get]
func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agendar cita
// @Description  Rechaza con 409 si el barbero ya tiene una cita agendada que se solapa.
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateAppointmentRequest  true  "client_id, barber_id, service_id, start_at, end_at"
// @Success      201  {object}  dto.AppointmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar cita (parcial)
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  int                           true  "ID"
// @Param        body  body  dto.UpdateAppointmentRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [put]
func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.UpdateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cita
// @Tags         appointments
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
