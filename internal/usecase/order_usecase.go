package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	repo "github.com/kitchenchain/franchise-api/internal/repository"

	"github.com/shopspring/decimal"
)

// attempts per order when the generated order_code is already taken
const maxOrderCodeAttempts = 3

// OrderUsecase creates orders atomically and serves the role-scoped reads.
// It does not touch inventory; stock effects belong to a later fulfilment step.
type OrderUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	products repo.ProductRepository
	codes    OrderCodeGenerator
	clock    Clock
	logger   *slog.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	products repo.ProductRepository,
	codes OrderCodeGenerator,
	clock Clock,
	logger *slog.Logger,
) *OrderUsecase {
	if codes == nil {
		codes = UUIDOrderCodes{}
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderUsecase{tx: tx, orders: orders, products: products, codes: codes, clock: clock, logger: logger}
}

type OrderItemInput struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

type CreateOrderInput struct {
	DeliveryDate *time.Time
	Items        []OrderItemInput
}

type OrderItemOutput struct {
	OrderItemID int64           `json:"order_item_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type OrderOutput struct {
	ID           int64             `json:"id"`
	OrderCode    string            `json:"order_code"`
	StoreID      int64             `json:"store_id"`
	OrderDate    time.Time         `json:"order_date"`
	DeliveryDate *time.Time        `json:"delivery_date"`
	Status       string            `json:"status"`
	TotalAmount  decimal.Decimal   `json:"total_amount"`
	CreatedBy    int64             `json:"created_by"`
	ConfirmedBy  *int64            `json:"confirmed_by"`
	IssuedBy     *int64            `json:"issued_by"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Items        []OrderItemOutput `json:"items"`
}

// Create writes header, items and total in one transaction for the caller's store.
func (u *OrderUsecase) Create(ctx context.Context, actor model.Identity, in CreateOrderInput) (OrderOutput, error) {
	if actor.ID <= 0 {
		return OrderOutput{}, NewHTTPError(401, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, badRequest("order must contain at least one item")
	}
	if actor.StoreID == nil {
		return OrderOutput{}, badRequest("user is not assigned to a store")
	}
	for i, it := range in.Items {
		if it.ProductID <= 0 {
			return OrderOutput{}, badRequest(fmt.Sprintf("items[%d].product_id is required", i))
		}
		if it.Quantity <= 0 {
			return OrderOutput{}, badRequest(fmt.Sprintf("items[%d].quantity must be greater than 0", i))
		}
		if it.UnitPrice.IsNegative() {
			return OrderOutput{}, badRequest(fmt.Sprintf("items[%d].unit_price must be >= 0", i))
		}
	}
	if err := u.checkProducts(ctx, in.Items); err != nil {
		return OrderOutput{}, err
	}

	for attempt := 1; attempt <= maxOrderCodeAttempts; attempt++ {
		out, err := u.createOnce(ctx, actor, *actor.StoreID, in)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, repo.ErrDuplicate) {
			u.logger.WarnContext(ctx, "order code collision, retrying", slog.Int("attempt", attempt))
			continue
		}
		return OrderOutput{}, passOrInternal(err)
	}
	return OrderOutput{}, internalError(errors.New("order: could not allocate a unique order code"))
}

func (u *OrderUsecase) checkProducts(ctx context.Context, items []OrderItemInput) error {
	seen := make(map[int64]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}

		if _, err := u.products.FindByID(ctx, it.ProductID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return badRequest(fmt.Sprintf("product %d not found", it.ProductID))
			}
			return internalError(err)
		}
	}
	return nil
}

func (u *OrderUsecase) createOnce(ctx context.Context, actor model.Identity, storeID int64, in CreateOrderInput) (OrderOutput, error) {
	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := u.clock.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			OrderCode:    u.codes.NewOrderCode(),
			StoreID:      storeID,
			OrderDate:    now,
			DeliveryDate: in.DeliveryDate,
			Status:       model.OrderStatusSubmitted,
			CreatedBy:    actor.ID,
		})
		if err != nil {
			return err
		}

		items := make([]model.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, model.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return err
		}
		if err := r.Orders().RecalculateTotal(ctx, orderID); err != nil {
			return err
		}

		lines, err := r.Orders().FindLinesByID(ctx, orderID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return fmt.Errorf("order %d vanished inside its transaction", orderID)
		}
		out = toOrderOutput(lines)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	u.logger.InfoContext(ctx, "order created",
		slog.Int64("order_id", out.ID),
		slog.String("order_code", out.OrderCode),
		slog.Int64("store_id", out.StoreID),
		slog.Int("items", len(out.Items)),
	)
	return out, nil
}

// Get returns header + items. FR_STAFF and MANAGER only see their own store.
func (u *OrderUsecase) Get(ctx context.Context, actor model.Identity, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, badRequest("invalid id")
	}

	lines, err := u.orders.FindLinesByID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, internalError(err)
	}
	if len(lines) == 0 {
		return OrderOutput{}, notFound("order not found")
	}

	out := toOrderOutput(lines)
	if actor.Role == model.RoleFRStaff || actor.Role == model.RoleManager {
		if !actor.OwnsStore(out.StoreID) {
			return OrderOutput{}, forbidden("you are not allowed to view this order")
		}
	}
	return out, nil
}

// List is newest first; FR_STAFF is limited to its own store.
func (u *OrderUsecase) List(ctx context.Context, actor model.Identity) ([]model.Order, error) {
	f := repo.OrderListFilter{}
	if actor.Role == model.RoleFRStaff {
		if actor.StoreID == nil {
			return []model.Order{}, badRequest("user is not assigned to a store")
		}
		f.StoreID = actor.StoreID
	}

	orders, err := u.orders.List(ctx, f)
	if err != nil {
		return []model.Order{}, internalError(err)
	}
	return orders, nil
}

// CancelExpired cancels SUBMITTED orders whose delivery date is before today.
func (u *OrderUsecase) CancelExpired(ctx context.Context) (int64, error) {
	now := u.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	n, err := u.orders.CancelExpired(ctx, today)
	if err != nil {
		return 0, internalError(err)
	}
	return n, nil
}

// toOrderOutput regroups flattened rows into one header with its items.
func toOrderOutput(lines []model.OrderLine) OrderOutput {
	h := lines[0]
	out := OrderOutput{
		ID:           h.ID,
		OrderCode:    h.OrderCode,
		StoreID:      h.StoreID,
		OrderDate:    h.OrderDate,
		DeliveryDate: h.DeliveryDate,
		Status:       string(h.Status),
		TotalAmount:  h.TotalAmount,
		CreatedBy:    h.CreatedBy,
		ConfirmedBy:  h.ConfirmedBy,
		IssuedBy:     h.IssuedBy,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
		Items:        make([]OrderItemOutput, 0, len(lines)),
	}

	for _, l := range lines {
		if l.OrderItemID == nil {
			continue
		}
		it := OrderItemOutput{
			OrderItemID: *l.OrderItemID,
			UnitPrice:   l.UnitPrice.Decimal,
			TotalPrice:  l.TotalPrice.Decimal,
		}
		if l.ProductID != nil {
			it.ProductID = *l.ProductID
		}
		if l.ProductName != nil {
			it.ProductName = *l.ProductName
		}
		if l.Quantity != nil {
			it.Quantity = *l.Quantity
		}
		out.Items = append(out.Items, it)
	}
	return out
}
