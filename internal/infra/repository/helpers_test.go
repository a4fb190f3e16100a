package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kitchenchain/franchise-api/internal/config"
	"github.com/kitchenchain/franchise-api/internal/domain/model"
	"github.com/kitchenchain/franchise-api/internal/infra/db"
	infraRepo "github.com/kitchenchain/franchise-api/internal/infra/repository"
	repo "github.com/kitchenchain/franchise-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	_ repo.InventoryRepository = (*infraRepo.InventoryGormRepository)(nil)
	_ repo.OrderRepository     = (*infraRepo.OrderGormRepository)(nil)
	_ repo.OrderItemRepository = (*infraRepo.OrderItemGormRepository)(nil)
	_ repo.ProductRepository   = (*infraRepo.ProductGormRepository)(nil)
	_ repo.StoreRepository     = (*infraRepo.StoreGormRepository)(nil)
	_ repo.CategoryRepository  = (*infraRepo.CategoryGormRepository)(nil)
	_ repo.TransactionManager  = (*infraRepo.TxManagerGorm)(nil)
)

// newTestDB opens a migrated sqlite file database private to the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.Connect(config.Config{
		DBDriver:     config.DriverSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	t.Cleanup(func() { _ = db.Close(gormDB) })
	return gormDB
}

// newPostgresTestDB connects to TEST_DATABASE_URL with a real pool and skips
// when it is unset. Rows are not cleaned up; seed with unique keys.
func newPostgresTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	gormDB, err := db.Connect(config.Config{
		DBDriver:     config.DriverPostgres,
		DatabaseURL:  dsn,
		MaxOpenConns: 10,
		MaxIdleConns: 10,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	t.Cleanup(func() { _ = db.Close(gormDB) })
	return gormDB
}

func uniqueSuffix() string { return uuid.NewString()[:8] }

func ptr[T any](v T) *T { return &v }

func seedStore(t *testing.T, gormDB *gorm.DB, name string) model.Store {
	t.Helper()
	s, err := infraRepo.NewStoreGormRepository(gormDB).Create(context.Background(), model.Store{
		Type: model.StoreTypeFranchise,
		Name: name,
	})
	require.NoError(t, err)
	return s
}

func seedProduct(t *testing.T, gormDB *gorm.DB, name, sku string, pt model.ProductType) model.Product {
	t.Helper()
	p, err := infraRepo.NewProductGormRepository(gormDB).Create(context.Background(), model.Product{
		CategoryID:  1,
		Name:        name,
		SKU:         sku,
		UOM:         "KG",
		ProductType: pt,
		IsActive:    true,
	})
	require.NoError(t, err)
	return p
}

func loadInventory(t *testing.T, gormDB *gorm.DB, storeID, productID int64) model.Inventory {
	t.Helper()
	var inv model.Inventory
	require.NoError(t, gormDB.Where("store_id = ? AND product_id = ?", storeID, productID).First(&inv).Error)
	return inv
}
