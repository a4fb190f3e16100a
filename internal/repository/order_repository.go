package repository

import (
	"context"
	"time"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
)

type OrderListFilter struct {
	// nil lists every store
	StoreID *int64
	Limit   int
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	// total_amount = SUM(order_items.total_price) in a single UPDATE
	RecalculateTotal(ctx context.Context, orderID int64) error

	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// header columns repeated per item; one row with nil item columns when the order has no items
	FindLinesByID(ctx context.Context, orderID int64) ([]model.OrderLine, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)

	// SUBMITTED orders with delivery_date before the cutoff become CANCELLED
	CancelExpired(ctx context.Context, before time.Time) (int64, error)
}
