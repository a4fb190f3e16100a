package handler

import (
	"net/http"
	"time"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	"github.com/kitchenchain/franchise-api/internal/middleware"
	"github.com/kitchenchain/franchise-api/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const deliveryDateLayout = "2006-01-02"

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderItemRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"dgte0"`
}

type OrderCreateRequest struct {
	DeliveryDate string             `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	Items        []OrderItemRequest `json:"items" validate:"dive"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(jwtSecret))

	g.POST("", h.create, middleware.RequireRoles(model.RoleFRStaff))
	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) create(c echo.Context) error {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		return writeFail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	in := usecase.CreateOrderInput{Items: make([]usecase.OrderItemInput, 0, len(req.Items))}
	if req.DeliveryDate != "" {
		d, err := time.Parse(deliveryDateLayout, req.DeliveryDate)
		if err != nil {
			return writeFail(c, http.StatusBadRequest, "delivery_date must be formatted as 2006-01-02")
		}
		in.DeliveryDate = &d
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, usecase.OrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	out, err := h.uc.Create(c.Request().Context(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusCreated, out, "order created")
}

func (h *OrderHandler) list(c echo.Context) error {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		return writeFail(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.List(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, out, "")
}

func (h *OrderHandler) detail(c echo.Context) error {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		return writeFail(c, http.StatusUnauthorized, "unauthorized")
	}

	id, ok := pathID(c, "id")
	if !ok {
		return writeFail(c, http.StatusBadRequest, "invalid id")
	}

	out, err := h.uc.Get(c.Request().Context(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, out, "")
}
