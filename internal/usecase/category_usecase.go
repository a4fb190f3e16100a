package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	repo "github.com/kitchenchain/franchise-api/internal/repository"
)

type CreateCategoryInput struct {
	Name        string
	Description *string
}

// CreateCategory rejects a name already used by a live category with 409.
// The partial unique index covers two creates racing past the lookup.
func (u *CatalogUsecase) CreateCategory(ctx context.Context, actorID int64, in CreateCategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, badRequest("name is required")
	}
	if len(name) > 255 {
		return model.Category{}, badRequest("name too long")
	}
	if in.Description != nil && len(*in.Description) > 1000 {
		return model.Category{}, badRequest("description too long")
	}

	_, err := u.categories.FindByName(ctx, name)
	if err == nil {
		return model.Category{}, conflict("category " + name + " already exists")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, internalError(err)
	}

	c := model.Category{Name: name, Description: in.Description, IsActive: true}
	if actorID > 0 {
		c.CreatedBy = &actorID
	}

	created, err := u.categories.Create(ctx, c)
	if errors.Is(err, repo.ErrDuplicate) {
		return model.Category{}, conflict("category " + name + " already exists")
	}
	if err != nil {
		return model.Category{}, internalError(err)
	}
	return created, nil
}

func (u *CatalogUsecase) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, badRequest("invalid category id")
	}
	c, err := u.categories.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, notFound("category not found")
	}
	if err != nil {
		return model.Category{}, internalError(err)
	}
	return c, nil
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categories.List(ctx)
	if err != nil {
		return []model.Category{}, internalError(err)
	}
	return items, nil
}
