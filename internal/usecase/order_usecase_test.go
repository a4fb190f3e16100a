package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	repo "github.com/kitchenchain/franchise-api/internal/repository"
	"github.com/kitchenchain/franchise-api/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var orderNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type orderFixture struct {
	tx         *TxManagerMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	products   *ProductRepoMock
	codes      *seqCodes
	uc         *usecase.OrderUsecase
}

func newOrderFixture(codes ...string) *orderFixture {
	if len(codes) == 0 {
		codes = []string{"ORD-1"}
	}
	f := &orderFixture{
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		products:   new(ProductRepoMock),
		codes:      &seqCodes{codes: codes},
	}
	f.tx = &TxManagerMock{Repos: &TxReposMock{orders: f.orders, orderItems: f.orderItems}}
	f.uc = usecase.NewOrderUsecase(f.tx, f.orders, f.products, f.codes, fixedClock{orderNow}, nil)
	return f
}

func frStaff(storeID int64) model.Identity {
	return model.Identity{ID: 5, Role: model.RoleFRStaff, StoreID: &storeID}
}

func orderLines(orderID, storeID int64, items ...model.OrderLine) []model.OrderLine {
	header := model.OrderLine{
		ID:          orderID,
		OrderCode:   "ORD-1",
		StoreID:     storeID,
		OrderDate:   orderNow,
		Status:      model.OrderStatusSubmitted,
		TotalAmount: decimal.RequireFromString("35.00"),
		CreatedBy:   5,
	}
	if len(items) == 0 {
		return []model.OrderLine{header}
	}
	out := make([]model.OrderLine, 0, len(items))
	for _, it := range items {
		l := header
		l.OrderItemID = it.OrderItemID
		l.ProductID = it.ProductID
		l.ProductName = it.ProductName
		l.Quantity = it.Quantity
		l.UnitPrice = it.UnitPrice
		l.TotalPrice = it.TotalPrice
		out = append(out, l)
	}
	return out
}

func itemLine(id, productID, qty int64, name, unit, total string) model.OrderLine {
	return model.OrderLine{
		OrderItemID: ptr(id),
		ProductID:   ptr(productID),
		ProductName: ptr(name),
		Quantity:    ptr(qty),
		UnitPrice:   decimal.NewNullDecimal(decimal.RequireFromString(unit)),
		TotalPrice:  decimal.NewNullDecimal(decimal.RequireFromString(total)),
	}
}

// =====================
// Create
// =====================

func TestOrderUsecase_Create_Success(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture("ORD-A")

	delivery := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	in := usecase.CreateOrderInput{
		DeliveryDate: &delivery,
		Items: []usecase.OrderItemInput{
			{ProductID: 7, Quantity: 2, UnitPrice: decimal.RequireFromString("12.50")},
			{ProductID: 8, Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
		},
	}

	f.products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7}, nil).Once()
	f.products.On("FindByID", mock.Anything, int64(8)).Return(model.Product{ID: 8}, nil).Once()
	f.tx.On("WithinTx", mock.Anything).Return(nil).Once()
	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.OrderCode == "ORD-A" && o.StoreID == 3 && o.Status == model.OrderStatusSubmitted &&
			o.CreatedBy == 5 && o.OrderDate.Equal(orderNow) && o.DeliveryDate.Equal(delivery)
	})).Return(int64(100), nil).Once()
	f.orderItems.On("CreateBulk", mock.Anything, int64(100), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 && items[0].ProductID == 7 && items[1].Quantity == 1
	})).Return(nil).Once()
	f.orders.On("RecalculateTotal", mock.Anything, int64(100)).Return(nil).Once()
	f.orders.On("FindLinesByID", mock.Anything, int64(100)).Return(orderLines(100, 3,
		itemLine(1, 7, 2, "Flour", "12.50", "25.00"),
		itemLine(2, 8, 1, "Sugar", "10.00", "10.00"),
	), nil).Once()

	out, err := f.uc.Create(ctx, frStaff(3), in)
	require.NoError(t, err)

	assert.Equal(t, int64(100), out.ID)
	assert.Equal(t, "SUBMITTED", out.Status)
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("35")))
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Flour", out.Items[0].ProductName)
	assert.True(t, out.Items[0].TotalPrice.Equal(decimal.RequireFromString("25")))

	f.tx.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.orderItems.AssertExpectations(t)
}

func TestOrderUsecase_Create_EmptyItems_400(t *testing.T) {
	f := newOrderFixture()
	_, err := f.uc.Create(context.Background(), frStaff(3), usecase.CreateOrderInput{})

	assertStatus(t, err, http.StatusBadRequest)
	assertErrContains(t, err, "order must contain at least one item")
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestOrderUsecase_Create_NoStore_400(t *testing.T) {
	f := newOrderFixture()
	actor := model.Identity{ID: 1, Role: model.RoleFRStaff}
	_, err := f.uc.Create(context.Background(), actor, usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{{ProductID: 1, Quantity: 1}},
	})

	assertStatus(t, err, http.StatusBadRequest)
	assertErrContains(t, err, "not assigned to a store")
}

func TestOrderUsecase_Create_InvalidItem_400(t *testing.T) {
	f := newOrderFixture()

	cases := []struct {
		name string
		item usecase.OrderItemInput
		want string
	}{
		{"zero quantity", usecase.OrderItemInput{ProductID: 1}, "items[0].quantity"},
		{"missing product", usecase.OrderItemInput{Quantity: 1}, "items[0].product_id"},
		{"negative price", usecase.OrderItemInput{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}, "items[0].unit_price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(context.Background(), frStaff(3), usecase.CreateOrderInput{
				Items: []usecase.OrderItemInput{tc.item},
			})
			assertStatus(t, err, http.StatusBadRequest)
			assertErrContains(t, err, tc.want)
		})
	}
}

func TestOrderUsecase_Create_UnknownProduct_400(t *testing.T) {
	f := newOrderFixture()
	f.products.On("FindByID", mock.Anything, int64(9)).Return(model.Product{}, repo.ErrNotFound).Once()

	_, err := f.uc.Create(context.Background(), frStaff(3), usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{{ProductID: 9, Quantity: 1}},
	})

	assertStatus(t, err, http.StatusBadRequest)
	assertErrContains(t, err, "product 9 not found")
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

// A failure inside the transaction surfaces as a generic 500.
func TestOrderUsecase_Create_TxFailure_500(t *testing.T) {
	f := newOrderFixture()
	f.products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7}, nil).Once()
	f.tx.On("WithinTx", mock.Anything).Return(nil).Once()
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(100), nil).Once()
	f.orderItems.On("CreateBulk", mock.Anything, int64(100), mock.Anything).Return(nil).Once()
	f.orders.On("RecalculateTotal", mock.Anything, int64(100)).Return(errors.New("boom")).Once()

	_, err := f.uc.Create(context.Background(), frStaff(3), usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{{ProductID: 7, Quantity: 1}},
	})

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
	assert.Equal(t, "internal server error", he.Message)
	f.orders.AssertNotCalled(t, "FindLinesByID", mock.Anything, mock.Anything)
}

func TestOrderUsecase_Create_RetriesOnDuplicateCode(t *testing.T) {
	f := newOrderFixture("ORD-DUP", "ORD-OK")
	f.products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7}, nil).Once()
	f.tx.On("WithinTx", mock.Anything).Return(nil).Twice()
	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool { return o.OrderCode == "ORD-DUP" })).
		Return(int64(0), repo.ErrDuplicate).Once()
	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool { return o.OrderCode == "ORD-OK" })).
		Return(int64(101), nil).Once()
	f.orderItems.On("CreateBulk", mock.Anything, int64(101), mock.Anything).Return(nil).Once()
	f.orders.On("RecalculateTotal", mock.Anything, int64(101)).Return(nil).Once()
	f.orders.On("FindLinesByID", mock.Anything, int64(101)).Return(orderLines(101, 3), nil).Once()

	out, err := f.uc.Create(context.Background(), frStaff(3), usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{{ProductID: 7, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(101), out.ID)
	f.orders.AssertExpectations(t)
}

func TestOrderUsecase_Create_GivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newOrderFixture("ORD-DUP")
	f.products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7}, nil).Once()
	f.tx.On("WithinTx", mock.Anything).Return(nil).Times(3)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(0), repo.ErrDuplicate).Times(3)

	_, err := f.uc.Create(context.Background(), frStaff(3), usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{{ProductID: 7, Quantity: 1}},
	})

	assertStatus(t, err, http.StatusInternalServerError)
	f.orders.AssertNumberOfCalls(t, "Create", 3)
}

// =====================
// Get / List
// =====================

func TestOrderUsecase_Get_RegroupsLines(t *testing.T) {
	f := newOrderFixture()
	f.orders.On("FindLinesByID", mock.Anything, int64(100)).Return(orderLines(100, 3,
		itemLine(1, 7, 2, "Flour", "12.50", "25.00"),
		itemLine(2, 8, 1, "Sugar", "10.00", "10.00"),
	), nil).Once()

	out, err := f.uc.Get(context.Background(), frStaff(3), 100)

	require.NoError(t, err)
	assert.Equal(t, int64(3), out.StoreID)
	require.Len(t, out.Items, 2)
	assert.Equal(t, int64(8), out.Items[1].ProductID)
}

func TestOrderUsecase_Get_HeaderOnly_EmptyItems(t *testing.T) {
	f := newOrderFixture()
	f.orders.On("FindLinesByID", mock.Anything, int64(100)).Return(orderLines(100, 3), nil).Once()

	out, err := f.uc.Get(context.Background(), frStaff(3), 100)

	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
}

func TestOrderUsecase_Get_NotFound(t *testing.T) {
	f := newOrderFixture()
	f.orders.On("FindLinesByID", mock.Anything, int64(404)).Return([]model.OrderLine{}, nil).Once()

	_, err := f.uc.Get(context.Background(), frStaff(3), 404)
	assertStatus(t, err, http.StatusNotFound)
}

func TestOrderUsecase_Get_StoreScope(t *testing.T) {
	other := int64(4)
	cases := []struct {
		name  string
		actor model.Identity
		want  int
	}{
		{"fr staff other store", frStaff(other), http.StatusForbidden},
		{"manager other store", model.Identity{ID: 2, Role: model.RoleManager, StoreID: &other}, http.StatusForbidden},
		{"manager without store", model.Identity{ID: 2, Role: model.RoleManager}, http.StatusForbidden},
		{"admin any store", model.Identity{ID: 1, Role: model.RoleAdmin}, 0},
		{"coordinator any store", model.Identity{ID: 1, Role: model.RoleSCCoordinator}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture()
			f.orders.On("FindLinesByID", mock.Anything, int64(100)).Return(orderLines(100, 3), nil).Once()

			_, err := f.uc.Get(context.Background(), tc.actor, 100)
			if tc.want == 0 {
				assert.NoError(t, err)
				return
			}
			assertStatus(t, err, tc.want)
		})
	}
}

func TestOrderUsecase_List_FRStaffScoped(t *testing.T) {
	f := newOrderFixture()
	f.orders.On("List", mock.Anything, mock.MatchedBy(func(fl repo.OrderListFilter) bool {
		return fl.StoreID != nil && *fl.StoreID == 3
	})).Return([]model.Order{{ID: 1, StoreID: 3}}, nil).Once()

	orders, err := f.uc.List(context.Background(), frStaff(3))

	require.NoError(t, err)
	assert.Len(t, orders, 1)
	f.orders.AssertExpectations(t)
}

func TestOrderUsecase_List_ManagerSeesAll(t *testing.T) {
	f := newOrderFixture()
	store := int64(3)
	f.orders.On("List", mock.Anything, repo.OrderListFilter{}).Return([]model.Order{{ID: 1}, {ID: 2}}, nil).Once()

	orders, err := f.uc.List(context.Background(), model.Identity{ID: 2, Role: model.RoleManager, StoreID: &store})

	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderUsecase_CancelExpired_UsesStartOfToday(t *testing.T) {
	f := newOrderFixture()
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	f.orders.On("CancelExpired", mock.Anything, want).Return(int64(4), nil).Once()

	n, err := f.uc.CancelExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	f.orders.AssertExpectations(t)
}
