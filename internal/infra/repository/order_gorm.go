package repository

import (
	"context"
	"time"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	repo "github.com/kitchenchain/franchise-api/internal/repository"

	"gorm.io/gorm"
)

const orderLineColumns = `
	o.id,
	o.order_code,
	o.store_id,
	o.order_date,
	o.delivery_date,
	o.status,
	o.total_amount,
	o.created_by,
	o.confirmed_by,
	o.issued_by,
	o.created_at,
	o.updated_at,
	oi.id AS order_item_id,
	oi.product_id,
	p.name AS product_name,
	oi.quantity,
	oi.unit_price,
	oi.total_price`

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		if isDuplicate(err) {
			return 0, repo.ErrDuplicate
		}
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) RecalculateTotal(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("total_amount", gorm.Expr(
			"(SELECT COALESCE(SUM(oi.total_price), 0) FROM order_items oi WHERE oi.order_id = ?)", orderID,
		))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if isNotFound(err) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) FindLinesByID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	var lines []model.OrderLine
	err := r.db.WithContext(ctx).
		Table("orders AS o").
		Select(orderLineColumns).
		Joins("LEFT JOIN order_items oi ON oi.order_id = o.id").
		Joins("LEFT JOIN products p ON p.id = oi.product_id").
		Where("o.id = ?", orderID).
		Order("oi.id ASC").
		Scan(&lines).Error
	if err != nil {
		return []model.OrderLine{}, err
	}
	if lines == nil {
		lines = []model.OrderLine{}
	}
	return lines, nil
}

func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 100
	}

	q := r.db.WithContext(ctx).Model(&model.Order{})
	if f.StoreID != nil {
		q = q.Where("store_id = ?", *f.StoreID)
	}

	var items []model.Order
	if err := q.Order("created_at desc").Order("id desc").Limit(f.Limit).Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) CancelExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("status = ? AND delivery_date IS NOT NULL AND delivery_date < ?", model.OrderStatusSubmitted, before).
		Update("status", model.OrderStatusCancelled)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
