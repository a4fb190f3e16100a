package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	repo "github.com/kitchenchain/franchise-api/internal/repository"
)

type CreateStoreInput struct {
	Type    string
	Name    string
	Address string
}

func (u *CatalogUsecase) CreateStore(ctx context.Context, actorID int64, in CreateStoreInput) (model.Store, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Store{}, badRequest("name is required")
	}
	if len(name) > 255 {
		return model.Store{}, badRequest("name too long")
	}
	if len(in.Address) > 500 {
		return model.Store{}, badRequest("address too long")
	}
	st := model.StoreType(strings.ToUpper(strings.TrimSpace(in.Type)))
	if !st.Valid() {
		return model.Store{}, badRequest("invalid store type")
	}

	s := model.Store{Type: st, Name: name, Address: strings.TrimSpace(in.Address)}
	if actorID > 0 {
		s.CreatedBy = &actorID
		s.UpdatedBy = &actorID
	}

	created, err := u.stores.Create(ctx, s)
	if err != nil {
		return model.Store{}, internalError(err)
	}
	return created, nil
}

func (u *CatalogUsecase) GetStore(ctx context.Context, id int64) (model.Store, error) {
	if id <= 0 {
		return model.Store{}, badRequest("invalid store id")
	}
	s, err := u.stores.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Store{}, notFound("store not found")
	}
	if err != nil {
		return model.Store{}, internalError(err)
	}
	return s, nil
}

func (u *CatalogUsecase) ListStores(ctx context.Context) ([]model.Store, error) {
	items, err := u.stores.List(ctx)
	if err != nil {
		return []model.Store{}, internalError(err)
	}
	return items, nil
}

// MyStore resolves the store the caller is assigned to.
func (u *CatalogUsecase) MyStore(ctx context.Context, actor model.Identity) (model.Store, error) {
	if actor.StoreID == nil {
		return model.Store{}, notFound("user is not assigned to a store")
	}
	return u.GetStore(ctx, *actor.StoreID)
}
