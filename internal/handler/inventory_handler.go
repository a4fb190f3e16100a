package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	"github.com/kitchenchain/franchise-api/internal/middleware"
	"github.com/kitchenchain/franchise-api/internal/usecase"

	"github.com/labstack/echo/v4"
)

type InventoryHandler struct {
	uc *usecase.InventoryUsecase
}

func NewInventoryHandler(uc *usecase.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

type StockMutationRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0"`
}

// every route is scoped to the store in the path
func (h *InventoryHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	g := e.Group("/stores/:id/inventory")
	g.Use(middleware.AuthJWT(jwtSecret))
	g.Use(middleware.RequireRoles(model.StaffRoles...))
	g.Use(middleware.StoreScope("id"))

	g.POST("/increase", h.mutate(h.uc.Increase, "stock increased"))
	g.POST("/decrease", h.mutate(h.uc.Decrease, "stock decreased"))
	g.POST("/reserve", h.mutate(h.uc.Reserve, "stock reserved"))
	g.POST("/release", h.mutate(h.uc.Release, "reserved stock released"))

	g.GET("", h.list)
	g.GET("/summary", h.summary)
	g.GET("/movements", h.movements)
	g.GET("/:product_id", h.detail)
}

type mutation func(ctx context.Context, actorID int64, in usecase.StockMutationInput) error

func (h *InventoryHandler) mutate(op mutation, msg string) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := middleware.IdentityFrom(c)
		if !ok {
			return writeFail(c, http.StatusUnauthorized, "unauthorized")
		}
		storeID, ok := pathID(c, "id")
		if !ok {
			return writeFail(c, http.StatusBadRequest, "invalid store id")
		}

		var req StockMutationRequest
		if err := c.Bind(&req); err != nil {
			return writeFail(c, http.StatusBadRequest, "invalid body")
		}
		if err := c.Validate(&req); err != nil {
			return writeError(c, err)
		}

		in := usecase.StockMutationInput{StoreID: storeID, ProductID: req.ProductID, Quantity: req.Quantity}
		if err := op(c.Request().Context(), actor.ID, in); err != nil {
			return writeError(c, err)
		}

		// the change is committed; a failed read-back only drops the item from the body
		item, err := h.uc.Get(c.Request().Context(), storeID, req.ProductID)
		if err != nil {
			slog.WarnContext(c.Request().Context(), "inventory read-back failed",
				slog.Int64("store_id", storeID),
				slog.Int64("product_id", req.ProductID),
				slog.Any("error", err),
			)
			return writeData(c, http.StatusOK, nil, msg)
		}
		return writeData(c, http.StatusOK, item, msg)
	}
}

func (h *InventoryHandler) list(c echo.Context) error {
	storeID, ok := pathID(c, "id")
	if !ok {
		return writeFail(c, http.StatusBadRequest, "invalid store id")
	}
	categoryID, ok := optionalInt64(c, "category_id")
	if !ok {
		return writeFail(c, http.StatusBadRequest, "invalid category_id")
	}

	lowStock := false
	if v := c.QueryParam("low_stock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return writeFail(c, http.StatusBadRequest, "invalid low_stock")
		}
		lowStock = b
	}

	items, err := h.uc.List(c.Request().Context(), usecase.ListInventoryInput{
		StoreID:     storeID,
		Keyword:     c.QueryParam("keyword"),
		CategoryID:  categoryID,
		ProductType: c.QueryParam("product_type"),
		LowStock:    lowStock,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, items, "")
}

func (h *InventoryHandler) summary(c echo.Context) error {
	storeID, ok := pathID(c, "id")
	if !ok {
		return writeFail(c, http.StatusBadRequest, "invalid store id")
	}
	s, err := h.uc.Summary(c.Request().Context(), storeID)
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, s, "")
}

func (h *InventoryHandler) detail(c echo.Context) error {
	storeID, ok := pathID(c, "id")
	if !ok {
		return writeFail(c, http.StatusBadRequest, "invalid store id")
	}
	productID, ok := pathID(c, "product_id")
	if !ok {
		return writeFail(c, http.StatusBadRequest, "invalid product id")
	}

	item, err := h.uc.Get(c.Request().Context(), storeID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, item, "")
}

func (h *InventoryHandler) movements(c echo.Context) error {
	storeID, ok := pathID(c, "id")
	if !ok {
		return writeFail(c, http.StatusBadRequest, "invalid store id")
	}
	productID, ok := optionalInt64(c, "product_id")
	if !ok {
		return writeFail(c, http.StatusBadRequest, "invalid product_id")
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return writeFail(c, http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}

	items, err := h.uc.Movements(c.Request().Context(), storeID, productID, limit)
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, items, "")
}
