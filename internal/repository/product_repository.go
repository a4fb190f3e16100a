package repository

import (
	"context"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
)

type ProductListQuery struct {
	Keyword     string
	CategoryID  *int64
	ProductType model.ProductType
}

// Soft-deleted products are invisible to every read.
type ProductRepository interface {
	Create(ctx context.Context, p model.Product) (model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	SoftDelete(ctx context.Context, id int64) error
}
