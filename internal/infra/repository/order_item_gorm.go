package repository

import (
	"context"

	"github.com/kitchenchain/franchise-api/internal/domain/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

// CreateBulk fills order_id and total_price before inserting.
func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]model.OrderItem, len(items))
	for i, it := range items {
		it.OrderID = orderID
		it.TotalPrice = it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		rows[i] = it
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
