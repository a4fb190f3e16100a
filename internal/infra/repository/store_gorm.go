package repository

import (
	"context"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	repo "github.com/kitchenchain/franchise-api/internal/repository"

	"gorm.io/gorm"
)

type StoreGormRepository struct {
	db *gorm.DB
}

func NewStoreGormRepository(db *gorm.DB) *StoreGormRepository {
	return &StoreGormRepository{db: db}
}

func (r *StoreGormRepository) Create(ctx context.Context, s model.Store) (model.Store, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Store{}, err
	}
	return s, nil
}

func (r *StoreGormRepository) FindByID(ctx context.Context, id int64) (model.Store, error) {
	var s model.Store
	err := r.db.WithContext(ctx).First(&s, id).Error
	if isNotFound(err) {
		return model.Store{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Store{}, err
	}
	return s, nil
}

func (r *StoreGormRepository) List(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store
	if err := r.db.WithContext(ctx).Order("id asc").Find(&stores).Error; err != nil {
		return []model.Store{}, err
	}
	return stores, nil
}
