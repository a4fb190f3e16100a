package repository

import (
	"context"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
)

// Soft-deleted categories are invisible to every read.
type CategoryRepository interface {
	// ErrDuplicate when a live category already has the name
	Create(ctx context.Context, c model.Category) (model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	FindByName(ctx context.Context, name string) (model.Category, error)
	// active categories, newest first
	List(ctx context.Context) ([]model.Category, error)
}
