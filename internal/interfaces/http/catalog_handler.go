package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barberia-api/internal/application/dto"
	"github.com/jhoicas/barberia-api/internal/application/usecase"
	"github.com/jhoicas/barberia-api/pkg/logger"
)

// CatalogHandler maneja clientes, barberos y servicios.
type CatalogHandler struct {
	clients  *usecase.ClientUseCase
	barbers  *usecase.BarberUseCase
	services *usecase.ServiceUseCase
	log      *logger.Logger
}

// NewCatalogHandler construye el handler de catálogos.
func NewCatalogHandler(clients *usecase.ClientUseCase, barbers *usecase.BarberUseCase, services *usecase.ServiceUseCase, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{clients: clients, barbers: barbers, services: services, log: log}
}

// ---------- Clientes ----------

// ListClients godoc
// @Summary      Listar clientes
// @Tags         clients
// @Produce      json
// @Security     Bearer
// @Param        q  query  string  false  "Busca por nombre o teléfono"
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/clients [get]
func (h *CatalogHandler) ListClients(c *fiber.Ctx) error {
	out, err := h.clients.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetClient godoc
// @Summary      Obtener cliente
// @Tags         clients
// @Produce      json
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *CatalogHandler) GetClient(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.clients.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateClient godoc
// @Summary      Crear cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateClientRequest  true  "name requerido"
// @Success      201  {object}  dto.ClientResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *CatalogHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.clients.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateClient godoc
// @Summary      Actualizar cliente (parcial)
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  int                      true  "ID"
// @Param        body  body  dto.UpdateClientRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *CatalogHandler) UpdateClient(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.clients.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteClient godoc
// @Summary      Eliminar cliente (y sus citas)
// @Tags         clients
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *CatalogHandler) DeleteClient(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.clients.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------- Barberos ----------

// ListBarbers godoc
// @Summary      Listar barberos
// @Tags         barbers
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.BarberResponse
// @Router       /api/barbers [get]
func (h *CatalogHandler) ListBarbers(c *fiber.Ctx) error {
	out, err := h.barbers.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateBarber godoc
// @Summary      Crear barbero
// @Tags         barbers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateBarberRequest  true  "name requerido"
// @Success      201  {object}  dto.BarberResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/barbers [post]
func (h *CatalogHandler) CreateBarber(c *fiber.Ctx) error {
	var in dto.CreateBarberRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.barbers.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateBarber godoc
// @Summary      Actualizar barbero (parcial)
// @Tags         barbers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  int                      true  "ID"
// @Param        body  body  dto.UpdateBarberRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.BarberResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/barbers/{id} [put]
func (h *CatalogHandler) UpdateBarber(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.UpdateBarberRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.barbers.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ---------- Servicios ----------

// ListServices godoc
// @Summary      Listar servicios
// @Tags         services
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.ServiceResponse
// @Router       /api/services [get]
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	out, err := h.services.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateService godoc
// @Summary      Crear servicio
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateServiceRequest  true  "name, duration_min, price_cents"
// @Success      201  {object}  dto.ServiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/services [post]
func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.services.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateService godoc
// @Summary      Actualizar servicio (parcial)
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  int                       true  "ID"
// @Param        body  body  dto.UpdateServiceRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.ServiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/{id} [put]
func (h *CatalogHandler) UpdateService(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.UpdateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.services.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
