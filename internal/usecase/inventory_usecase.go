package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	repo "github.com/kitchenchain/franchise-api/internal/repository"
)

// InventoryUsecase guards the stock ledger. Each mutation is a single
// conditional statement; a rejected one leaves the row untouched.
type InventoryUsecase struct {
	inventory         repo.InventoryRepository
	products          repo.ProductRepository
	stores            repo.StoreRepository
	lowStockThreshold int64
	logger            *slog.Logger
}

func NewInventoryUsecase(
	inventory repo.InventoryRepository,
	products repo.ProductRepository,
	stores repo.StoreRepository,
	lowStockThreshold int64,
	logger *slog.Logger,
) *InventoryUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &InventoryUsecase{
		inventory:         inventory,
		products:          products,
		stores:            stores,
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

type StockMutationInput struct {
	StoreID   int64
	ProductID int64
	Quantity  int64
}

func (in StockMutationInput) validate() error {
	if in.StoreID <= 0 {
		return badRequest("invalid store_id")
	}
	if in.ProductID <= 0 {
		return badRequest("product_id is required")
	}
	if in.Quantity <= 0 {
		return badRequest("quantity must be greater than 0")
	}
	return nil
}

// Increase books a goods receipt, creating the row on first receipt.
func (u *InventoryUsecase) Increase(ctx context.Context, actorID int64, in StockMutationInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	if _, err := u.stores.FindByID(ctx, in.StoreID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("store not found")
		}
		return internalError(err)
	}
	if err := u.requireProduct(ctx, in.ProductID); err != nil {
		return err
	}

	if err := u.inventory.Increase(ctx, in.StoreID, in.ProductID, in.Quantity); err != nil {
		return internalError(err)
	}
	u.record(ctx, actorID, in, model.MovementIncrease)
	return nil
}

// Decrease books a goods issue against available stock.
func (u *InventoryUsecase) Decrease(ctx context.Context, actorID int64, in StockMutationInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	if err := u.requireProduct(ctx, in.ProductID); err != nil {
		return err
	}
	ok, err := u.inventory.Decrease(ctx, in.StoreID, in.ProductID, in.Quantity)
	if err != nil {
		return internalError(err)
	}
	if !ok {
		return badRequest("insufficient available stock")
	}
	u.record(ctx, actorID, in, model.MovementDecrease)
	return nil
}

func (u *InventoryUsecase) Reserve(ctx context.Context, actorID int64, in StockMutationInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	if err := u.requireProduct(ctx, in.ProductID); err != nil {
		return err
	}
	ok, err := u.inventory.Reserve(ctx, in.StoreID, in.ProductID, in.Quantity)
	if err != nil {
		return internalError(err)
	}
	if !ok {
		return badRequest("insufficient available stock")
	}
	u.record(ctx, actorID, in, model.MovementReserve)
	return nil
}

func (u *InventoryUsecase) Release(ctx context.Context, actorID int64, in StockMutationInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	if err := u.requireProduct(ctx, in.ProductID); err != nil {
		return err
	}
	ok, err := u.inventory.Release(ctx, in.StoreID, in.ProductID, in.Quantity)
	if err != nil {
		return internalError(err)
	}
	if !ok {
		return badRequest("cannot release more than reserved quantity")
	}
	u.record(ctx, actorID, in, model.MovementRelease)
	return nil
}

// requireProduct rejects products that are unknown or soft-deleted. The
// guarded UPDATEs repeat the check, so a delete racing this lookup still
// leaves the stock row alone.
func (u *InventoryUsecase) requireProduct(ctx context.Context, productID int64) error {
	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("product not found")
		}
		return internalError(err)
	}
	return nil
}

// record writes the history row after the mutation has already committed.
// A failure here is logged; the stock change stands.
func (u *InventoryUsecase) record(ctx context.Context, actorID int64, in StockMutationInput, action model.MovementAction) {
	err := u.inventory.CreateMovement(ctx, model.InventoryMovement{
		StoreID:     in.StoreID,
		ProductID:   in.ProductID,
		ActorUserID: actorID,
		Action:      action,
		Quantity:    in.Quantity,
	})
	if err != nil {
		u.logger.WarnContext(ctx, "inventory movement not recorded",
			slog.String("action", string(action)),
			slog.Int64("store_id", in.StoreID),
			slog.Int64("product_id", in.ProductID),
			slog.Int64("quantity", in.Quantity),
			slog.Any("error", err),
		)
	}
}

type ListInventoryInput struct {
	StoreID     int64
	Keyword     string
	CategoryID  *int64
	ProductType string
	LowStock    bool
}

func (u *InventoryUsecase) List(ctx context.Context, in ListInventoryInput) ([]model.InventoryItem, error) {
	if in.StoreID <= 0 {
		return []model.InventoryItem{}, badRequest("invalid store_id")
	}
	if len(in.Keyword) > 100 {
		return []model.InventoryItem{}, badRequest("keyword too long")
	}
	pt := model.ProductType(strings.TrimSpace(in.ProductType))
	if pt != "" && !pt.Valid() {
		return []model.InventoryItem{}, badRequest("invalid product_type")
	}

	items, err := u.inventory.FindByStore(ctx, repo.InventoryFilter{
		StoreID:           in.StoreID,
		Keyword:           strings.TrimSpace(in.Keyword),
		CategoryID:        in.CategoryID,
		ProductType:       pt,
		LowStock:          in.LowStock,
		LowStockThreshold: u.lowStockThreshold,
	})
	if err != nil {
		return []model.InventoryItem{}, internalError(err)
	}
	return items, nil
}

func (u *InventoryUsecase) Get(ctx context.Context, storeID, productID int64) (model.InventoryItem, error) {
	if storeID <= 0 || productID <= 0 {
		return model.InventoryItem{}, badRequest("invalid id")
	}
	item, err := u.inventory.FindOne(ctx, storeID, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.InventoryItem{}, notFound("inventory item not found")
	}
	if err != nil {
		return model.InventoryItem{}, internalError(err)
	}
	return item, nil
}

func (u *InventoryUsecase) Summary(ctx context.Context, storeID int64) (model.InventorySummary, error) {
	if storeID <= 0 {
		return model.InventorySummary{}, badRequest("invalid store_id")
	}
	s, err := u.inventory.Summary(ctx, storeID)
	if err != nil {
		return model.InventorySummary{}, internalError(err)
	}
	return s, nil
}

func (u *InventoryUsecase) Movements(ctx context.Context, storeID int64, productID *int64, limit int) ([]model.InventoryMovement, error) {
	if storeID <= 0 {
		return []model.InventoryMovement{}, badRequest("invalid store_id")
	}
	if limit < 0 || limit > 200 {
		return []model.InventoryMovement{}, badRequest("invalid limit")
	}
	items, err := u.inventory.ListMovements(ctx, repo.MovementFilter{StoreID: storeID, ProductID: productID, Limit: limit})
	if err != nil {
		return []model.InventoryMovement{}, internalError(err)
	}
	return items, nil
}
