package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	repo "github.com/kitchenchain/franchise-api/internal/repository"
	"github.com/kitchenchain/franchise-api/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock runs fn against fixed repos so unit tests control every call.
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }

// =====================
// Repository mocks
// =====================

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) Increase(ctx context.Context, storeID, productID, qty int64) error {
	return m.Called(ctx, storeID, productID, qty).Error(0)
}

func (m *InventoryRepoMock) Decrease(ctx context.Context, storeID, productID, qty int64) (bool, error) {
	args := m.Called(ctx, storeID, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) Reserve(ctx context.Context, storeID, productID, qty int64) (bool, error) {
	args := m.Called(ctx, storeID, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) Release(ctx context.Context, storeID, productID, qty int64) (bool, error) {
	args := m.Called(ctx, storeID, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) FindByStore(ctx context.Context, f repo.InventoryFilter) ([]model.InventoryItem, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.InventoryItem)
	return items, args.Error(1)
}

func (m *InventoryRepoMock) FindOne(ctx context.Context, storeID, productID int64) (model.InventoryItem, error) {
	args := m.Called(ctx, storeID, productID)
	it, _ := args.Get(0).(model.InventoryItem)
	return it, args.Error(1)
}

func (m *InventoryRepoMock) Summary(ctx context.Context, storeID int64) (model.InventorySummary, error) {
	args := m.Called(ctx, storeID)
	s, _ := args.Get(0).(model.InventorySummary)
	return s, args.Error(1)
}

func (m *InventoryRepoMock) CreateMovement(ctx context.Context, mv model.InventoryMovement) error {
	return m.Called(ctx, mv).Error(0)
}

func (m *InventoryRepoMock) ListMovements(ctx context.Context, f repo.MovementFilter) ([]model.InventoryMovement, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.InventoryMovement)
	return items, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type StoreRepoMock struct{ mock.Mock }

func (m *StoreRepoMock) Create(ctx context.Context, s model.Store) (model.Store, error) {
	args := m.Called(ctx, s)
	out, _ := args.Get(0).(model.Store)
	return out, args.Error(1)
}

func (m *StoreRepoMock) FindByID(ctx context.Context, id int64) (model.Store, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Store)
	return s, args.Error(1)
}

func (m *StoreRepoMock) List(ctx context.Context) ([]model.Store, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Store)
	return items, args.Error(1)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) FindByName(ctx context.Context, name string) (model.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) RecalculateTotal(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	panic("not used in usecase tests")
}

func (m *OrderRepoMock) FindLinesByID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	args := m.Called(ctx, orderID)
	lines, _ := args.Get(0).([]model.OrderLine)
	return lines, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) CancelExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

var (
	_ repo.InventoryRepository = (*InventoryRepoMock)(nil)
	_ repo.ProductRepository   = (*ProductRepoMock)(nil)
	_ repo.StoreRepository     = (*StoreRepoMock)(nil)
	_ repo.CategoryRepository  = (*CategoryRepoMock)(nil)
	_ repo.OrderRepository     = (*OrderRepoMock)(nil)
	_ repo.OrderItemRepository = (*OrderItemRepoMock)(nil)
	_ repo.TransactionManager  = (*TxManagerMock)(nil)
)

// =====================
// Helpers
// =====================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// seqCodes hands out the given codes in order, repeating the last one.
type seqCodes struct {
	codes []string
	n     int
}

func (s *seqCodes) NewOrderCode() string {
	c := s.codes[min(s.n, len(s.codes)-1)]
	s.n++
	return c
}

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "want HTTPError, got %v", err) {
		assert.Equal(t, want, he.Status)
	}
}

func ptr[T any](v T) *T { return &v }
