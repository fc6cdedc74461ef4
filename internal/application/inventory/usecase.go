package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barberia-api/internal/application/dto"
	"github.com/jhoicas/barberia-api/internal/domain"
	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

const (
	defaultUnit       = "un"
	movementListLimit = 200
)

// ItemUseCase CRUD de ítems de inventario y consultas sobre el libro.
type ItemUseCase struct {
	items     repository.InventoryItemRepository
	movements repository.InventoryMovementRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(items repository.InventoryItemRepository, movements repository.InventoryMovementRepository) *ItemUseCase {
	return &ItemUseCase{items: items, movements: movements}
}

// Create crea un ítem. stock_qty, si viene, se guarda también como initial_qty.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	item := &entity.InventoryItem{
		Name:   name,
		Unit:   defaultUnit,
		Active: true,
	}
	if in.StockQty != nil {
		if err := validateQty("stock_qty", *in.StockQty); err != nil {
			return nil, err
		}
		item.StockQty = *in.StockQty
		item.InitialQty = *in.StockQty
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) != "" {
		item.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	if err := applyPricing(item, in.CostCents, in.PriceCents, in.LowStockThreshold); err != nil {
		return nil, err
	}
	if err := uc.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update actualiza datos descriptivos del ítem; el stock no se toca.
func (uc *ItemUseCase) Update(ctx context.Context, id int64, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %d", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
		}
		item.Name = name
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) != "" {
		item.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	if err := applyPricing(item, in.CostCents, in.PriceCents, in.LowStockThreshold); err != nil {
		return nil, err
	}
	if err := uc.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Get obtiene un ítem por ID.
func (uc *ItemUseCase) Get(ctx context.Context, id int64) (*dto.InventoryItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %d", domain.ErrNotFound, id)
	}
	return toItemResponse(item), nil
}

// List lista ítems; lowStockOnly filtra los que están en o bajo su umbral.
func (uc *ItemUseCase) List(ctx context.Context, lowStockOnly bool) ([]dto.InventoryItemResponse, error) {
	list, err := uc.items.List(ctx, lowStockOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// ListMovements devuelve los movimientos del ítem, más recientes primero.
func (uc *ItemUseCase) ListMovements(ctx context.Context, itemID int64) ([]dto.InventoryMovementResponse, error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %d", domain.ErrNotFound, itemID)
	}
	list, err := uc.movements.ListByItem(ctx, itemID, movementListLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

// Reconcile verifica stock_qty = initial_qty + Σ change_qty.
func (uc *ItemUseCase) Reconcile(ctx context.Context, itemID int64) (*dto.ReconcileResponse, error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %d", domain.ErrNotFound, itemID)
	}
	total, err := uc.movements.SumByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &dto.ReconcileResponse{
		ItemID:         item.ID,
		StockQty:       item.StockQty,
		InitialQty:     item.InitialQty,
		MovementsTotal: total,
		Consistent:     item.InitialQty.Add(total).Equal(item.StockQty),
	}, nil
}

func applyPricing(item *entity.InventoryItem, cost, price *int64, threshold *decimal.Decimal) error {
	if cost != nil {
		if *cost < 0 {
			return fmt.Errorf("%w: cost_cents no puede ser negativo", domain.ErrInvalidInput)
		}
		item.CostCents = *cost
	}
	if price != nil {
		if *price < 0 {
			return fmt.Errorf("%w: price_cents no puede ser negativo", domain.ErrInvalidInput)
		}
		item.PriceCents = *price
	}
	if threshold != nil {
		if threshold.IsNegative() {
			return fmt.Errorf("%w: low_stock_threshold no puede ser negativo", domain.ErrInvalidInput)
		}
		if err := validateQty("low_stock_threshold", *threshold); err != nil {
			return err
		}
		item.LowStockThreshold = *threshold
	}
	return nil
}

func toItemResponse(it *entity.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:                it.ID,
		Name:              it.Name,
		StockQty:          it.StockQty,
		Unit:              it.Unit,
		CostCents:         it.CostCents,
		PriceCents:        it.PriceCents,
		LowStockThreshold: it.LowStockThreshold,
		LowStock:          it.IsLowStock(),
		Active:            it.Active,
		CreatedAt:         it.CreatedAt,
	}
}
