package repository

import (
	"context"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
}
