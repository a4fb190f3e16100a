package repository

import (
	"context"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
)

type StoreRepository interface {
	Create(ctx context.Context, s model.Store) (model.Store, error)
	FindByID(ctx context.Context, id int64) (model.Store, error)
	List(ctx context.Context) ([]model.Store, error)
}
