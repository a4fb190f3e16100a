package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	repo "github.com/kitchenchain/franchise-api/internal/repository"
	"github.com/kitchenchain/franchise-api/internal/sku"
)

// CatalogUsecase owns the product catalogue, its categories and the store directory.
type CatalogUsecase struct {
	products   repo.ProductRepository
	stores     repo.StoreRepository
	categories repo.CategoryRepository
}

func NewCatalogUsecase(products repo.ProductRepository, stores repo.StoreRepository, categories repo.CategoryRepository) *CatalogUsecase {
	return &CatalogUsecase{products: products, stores: stores, categories: categories}
}

type CreateProductInput struct {
	CategoryID  int64
	Name        string
	UOM         string
	ProductType string
	ImageURL    *string
}

// CreateProduct derives the SKU from name and type. The same pair always
// yields the same SKU, so a repeat is reported as a conflict.
func (u *CatalogUsecase) CreateProduct(ctx context.Context, actorID int64, in CreateProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, badRequest("name is required")
	}
	if len(name) > 255 {
		return model.Product{}, badRequest("name too long")
	}
	if in.CategoryID <= 0 {
		return model.Product{}, badRequest("category_id is required")
	}
	uom := strings.ToUpper(strings.TrimSpace(in.UOM))
	if !validUOM(uom) {
		return model.Product{}, badRequest("invalid uom")
	}
	pt := model.ProductType(strings.TrimSpace(in.ProductType))
	if !pt.Valid() {
		return model.Product{}, badRequest("invalid product_type")
	}

	code, err := sku.Generate(name, pt)
	if err != nil {
		return model.Product{}, badRequest("name must contain at least one letter or digit")
	}

	if _, err := u.categories.FindByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, badRequest("category not found")
		}
		return model.Product{}, internalError(err)
	}

	p := model.Product{
		CategoryID:  in.CategoryID,
		Name:        name,
		SKU:         code,
		UOM:         uom,
		ProductType: pt,
		ImageURL:    in.ImageURL,
		IsActive:    true,
	}
	if actorID > 0 {
		p.CreatedBy = &actorID
		p.UpdatedBy = &actorID
	}

	created, err := u.products.Create(ctx, p)
	if errors.Is(err, repo.ErrDuplicate) {
		return model.Product{}, conflict("product with sku " + code + " already exists")
	}
	if err != nil {
		return model.Product{}, internalError(err)
	}
	return created, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, badRequest("invalid product id")
	}
	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, notFound("product not found")
	}
	if err != nil {
		return model.Product{}, internalError(err)
	}
	return p, nil
}

type ListProductsInput struct {
	Keyword     string
	CategoryID  *int64
	ProductType string
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if len(in.Keyword) > 100 {
		return []model.Product{}, badRequest("keyword too long")
	}
	pt := model.ProductType(strings.TrimSpace(in.ProductType))
	if pt != "" && !pt.Valid() {
		return []model.Product{}, badRequest("invalid product_type")
	}

	items, err := u.products.List(ctx, repo.ProductListQuery{
		Keyword:     strings.TrimSpace(in.Keyword),
		CategoryID:  in.CategoryID,
		ProductType: pt,
	})
	if err != nil {
		return []model.Product{}, internalError(err)
	}
	return items, nil
}

// DeleteProduct is a soft delete; inventory rows stay but drop out of reads.
func (u *CatalogUsecase) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return badRequest("invalid product id")
	}
	err := u.products.SoftDelete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("product not found")
	}
	if err != nil {
		return internalError(err)
	}
	return nil
}

func validUOM(uom string) bool {
	for _, u := range model.UnitsOfMeasure {
		if u == uom {
			return true
		}
	}
	return false
}
