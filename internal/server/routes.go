package server

import (
	"context"
	"net/http"

	"github.com/kitchenchain/franchise-api/internal/handler"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether the database is reachable.
type Pinger func(ctx context.Context) error

type Handlers struct {
	Inventory  *handler.InventoryHandler
	Orders     *handler.OrderHandler
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Stores     *handler.StoreHandler
	Ping       Pinger
}

func registerRoutes(e *echo.Echo, jwtSecret string, h Handlers) {
	e.GET("/healthz", health(h.Ping))

	h.Inventory.RegisterRoutes(e, jwtSecret)
	h.Orders.RegisterRoutes(e, jwtSecret)
	h.Products.RegisterRoutes(e, jwtSecret)
	h.Categories.RegisterRoutes(e, jwtSecret)
	h.Stores.RegisterRoutes(e, jwtSecret)
}

func health(ping Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ping != nil {
			if err := ping(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, handler.ErrorResponse{
					ErrorCode: http.StatusServiceUnavailable,
					Message:   "database unavailable",
				})
			}
		}
		return c.JSON(http.StatusOK, handler.SuccessResponse{Data: map[string]string{"status": "ok"}})
	}
}
