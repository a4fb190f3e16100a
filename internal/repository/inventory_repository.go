package repository

import (
	"context"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
)

// InventoryFilter narrows a store listing.
type InventoryFilter struct {
	StoreID     int64
	Keyword     string
	CategoryID  *int64
	ProductType model.ProductType
	LowStock    bool
	// available <= LowStockThreshold when LowStock is set
	LowStockThreshold int64
}

type MovementFilter struct {
	StoreID   int64
	ProductID *int64
	Limit     int
}

// Every mutation is one atomic statement. The bool results are false when the
// guarded UPDATE matched no row, which callers treat as a business rejection.
type InventoryRepository interface {
	// Creates the row on first receipt, otherwise adds qty to quantity.
	Increase(ctx context.Context, storeID, productID, qty int64) error

	// quantity -= qty only while quantity - reserved_quantity >= qty
	Decrease(ctx context.Context, storeID, productID, qty int64) (bool, error)

	// reserved_quantity += qty only while quantity - reserved_quantity >= qty
	Reserve(ctx context.Context, storeID, productID, qty int64) (bool, error)

	// reserved_quantity -= qty only while reserved_quantity >= qty
	Release(ctx context.Context, storeID, productID, qty int64) (bool, error)

	FindByStore(ctx context.Context, f InventoryFilter) ([]model.InventoryItem, error)
	FindOne(ctx context.Context, storeID, productID int64) (model.InventoryItem, error)
	Summary(ctx context.Context, storeID int64) (model.InventorySummary, error)

	CreateMovement(ctx context.Context, m model.InventoryMovement) error
	ListMovements(ctx context.Context, f MovementFilter) ([]model.InventoryMovement, error)
}
