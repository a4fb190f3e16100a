package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	repo "github.com/kitchenchain/franchise-api/internal/repository"

	"gorm.io/gorm"
)

const inventoryItemColumns = `
	i.store_id,
	i.product_id,
	p.name,
	p.sku,
	p.uom,
	p.product_type,
	p.category_id,
	i.quantity,
	i.reserved_quantity,
	(i.quantity - i.reserved_quantity) AS available_quantity,
	i.updated_at`

// guarded mutations never touch stock of a product removed from the catalogue
const liveProduct = "product_id IN (SELECT id FROM products WHERE deleted_at IS NULL)"

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// Increase is get-or-create: bump an existing row, insert on first receipt,
// and bump again if a concurrent insert won the race for the composite key.
func (r *InventoryGormRepository) Increase(ctx context.Context, storeID, productID, qty int64) error {
	for attempt := 0; attempt < 2; attempt++ {
		res := r.db.WithContext(ctx).
			Model(&model.Inventory{}).
			Where("store_id = ? AND product_id = ?", storeID, productID).
			Update("quantity", gorm.Expr("quantity + ?", qty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		err := r.db.WithContext(ctx).Create(&model.Inventory{
			StoreID:   storeID,
			ProductID: productID,
			Quantity:  qty,
		}).Error
		if err == nil {
			return nil
		}
		if !isDuplicate(err) {
			return err
		}
	}
	return fmt.Errorf("inventory: increase store=%d product=%d: row contention", storeID, productID)
}

func (r *InventoryGormRepository) Decrease(ctx context.Context, storeID, productID, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Inventory{}).
		Where("store_id = ? AND product_id = ? AND (quantity - reserved_quantity) >= ?", storeID, productID, qty).
		Where(liveProduct).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	return affected(res)
}

func (r *InventoryGormRepository) Reserve(ctx context.Context, storeID, productID, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Inventory{}).
		Where("store_id = ? AND product_id = ? AND (quantity - reserved_quantity) >= ?", storeID, productID, qty).
		Where(liveProduct).
		Update("reserved_quantity", gorm.Expr("reserved_quantity + ?", qty))
	return affected(res)
}

func (r *InventoryGormRepository) Release(ctx context.Context, storeID, productID, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Inventory{}).
		Where("store_id = ? AND product_id = ? AND reserved_quantity >= ?", storeID, productID, qty).
		Where(liveProduct).
		Update("reserved_quantity", gorm.Expr("reserved_quantity - ?", qty))
	return affected(res)
}

func affected(res *gorm.DB) (bool, error) {
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *InventoryGormRepository) baseItems(ctx context.Context, storeID int64) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("inventories AS i").
		Select(inventoryItemColumns).
		Joins("JOIN products p ON p.id = i.product_id").
		Where("i.store_id = ?", storeID).
		Where("p.deleted_at IS NULL")
}

func (r *InventoryGormRepository) FindByStore(ctx context.Context, f repo.InventoryFilter) ([]model.InventoryItem, error) {
	q := r.baseItems(ctx, f.StoreID)

	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		q = q.Where("(LOWER(p.name) LIKE ? OR LOWER(p.sku) LIKE ?)", like, like)
	}
	if f.CategoryID != nil {
		q = q.Where("p.category_id = ?", *f.CategoryID)
	}
	if f.ProductType != "" {
		q = q.Where("p.product_type = ?", f.ProductType)
	}
	if f.LowStock {
		q = q.Where("(i.quantity - i.reserved_quantity) <= ?", f.LowStockThreshold)
	}

	var items []model.InventoryItem
	if err := q.Order("p.name ASC").Order("i.product_id ASC").Scan(&items).Error; err != nil {
		return []model.InventoryItem{}, err
	}
	if items == nil {
		items = []model.InventoryItem{}
	}
	return items, nil
}

func (r *InventoryGormRepository) FindOne(ctx context.Context, storeID, productID int64) (model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.baseItems(ctx, storeID).
		Where("i.product_id = ?", productID).
		Limit(1).
		Scan(&items).Error
	if err != nil {
		return model.InventoryItem{}, err
	}
	if len(items) == 0 {
		return model.InventoryItem{}, repo.ErrNotFound
	}
	return items[0], nil
}

func (r *InventoryGormRepository) Summary(ctx context.Context, storeID int64) (model.InventorySummary, error) {
	var s model.InventorySummary
	err := r.db.WithContext(ctx).
		Table("inventories AS i").
		Select(`
			COUNT(*) AS total_products,
			CAST(COALESCE(SUM(i.quantity), 0) AS BIGINT) AS total_quantity,
			CAST(COALESCE(SUM(i.reserved_quantity), 0) AS BIGINT) AS total_reserved,
			CAST(COALESCE(SUM(i.quantity - i.reserved_quantity), 0) AS BIGINT) AS total_available`).
		Joins("JOIN products p ON p.id = i.product_id").
		Where("i.store_id = ?", storeID).
		Where("p.deleted_at IS NULL").
		Scan(&s).Error
	if err != nil {
		return model.InventorySummary{}, err
	}
	s.StoreID = storeID
	return s, nil
}

func (r *InventoryGormRepository) CreateMovement(ctx context.Context, m model.InventoryMovement) error {
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *InventoryGormRepository) ListMovements(ctx context.Context, f repo.MovementFilter) ([]model.InventoryMovement, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).Where("store_id = ?", f.StoreID)
	if f.ProductID != nil {
		q = q.Where("product_id = ?", *f.ProductID)
	}

	var items []model.InventoryMovement
	if err := q.Order("id desc").Limit(f.Limit).Find(&items).Error; err != nil {
		return []model.InventoryMovement{}, err
	}
	return items, nil
}
