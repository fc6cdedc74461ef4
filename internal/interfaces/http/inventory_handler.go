package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barberia-api/internal/application/dto"
	"github.com/jhoicas/barberia-api/internal/application/inventory"
	"github.com/jhoicas/barberia-api/pkg/logger"
)

// InventoryHandler maneja ítems de inventario y su libro de movimientos (protegido).
type InventoryHandler struct {
	items     *inventory.ItemUseCase
	movements *inventory.RegisterMovementUseCase
	log       *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(items *inventory.ItemUseCase, movements *inventory.RegisterMovementUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{items: items, movements: movements, log: log}
}

// ListItems godoc
// @Summary      Listar ítems
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        low_stock  query  bool  false  "Solo ítems en o bajo el umbral"
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	out, err := h.items.List(c.UserContext(), c.QueryBool("low_stock", false))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateItem godoc
// @Summary      Crear ítem
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "name requerido; stock_qty inicial opcional"
// @Success      201  {object}  dto.InventoryItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.items.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Actualizar ítem (sin tocar stock)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                             true  "ID"
// @Param        body  body  dto.UpdateInventoryItemRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.UpdateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.items.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Movimientos de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del ítem"
// @Success      200  {array}  dto.InventoryMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.items.ListMovements(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Ajusta stock_qty y guarda el movimiento en una sola transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID del ítem"
// @Param        body  body  dto.RegisterMovementRequest  true  "change_qty (con signo), reason"
// @Success      201  {object}  dto.InventoryMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.movements.RegisterMovementFromRequest(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Reconcile godoc
// @Summary      Conciliar stock con el libro de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del ítem"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/reconcile [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.items.Reconcile(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
