package handler

import (
	"net/http"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	"github.com/kitchenchain/franchise-api/internal/middleware"
	"github.com/kitchenchain/franchise-api/internal/usecase"

	"github.com/labstack/echo/v4"
)

type StoreHandler struct {
	uc *usecase.CatalogUsecase
}

func NewStoreHandler(uc *usecase.CatalogUsecase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

type StoreCreateRequest struct {
	Type    string `json:"type" validate:"required,oneof=FR CK SC"`
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"max=500"`
}

func (h *StoreHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	g := e.Group("/stores")
	g.Use(middleware.AuthJWT(jwtSecret))

	g.POST("", h.create, middleware.RequireRoles(model.RoleAdmin))
	g.GET("", h.list, middleware.RequireRoles(model.RoleAdmin, model.RoleManager, model.RoleSCCoordinator))
	g.GET("/me", h.me)
	g.GET("/:id", h.detail, middleware.StoreScope("id"))
}

func (h *StoreHandler) create(c echo.Context) error {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		return writeFail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req StoreCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	s, err := h.uc.CreateStore(c.Request().Context(), actor.ID, usecase.CreateStoreInput{
		Type:    req.Type,
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusCreated, s, "store created")
}

func (h *StoreHandler) list(c echo.Context) error {
	items, err := h.uc.ListStores(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, items, "")
}

func (h *StoreHandler) me(c echo.Context) error {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		return writeFail(c, http.StatusUnauthorized, "unauthorized")
	}

	s, err := h.uc.MyStore(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, s, "")
}

func (h *StoreHandler) detail(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return writeFail(c, http.StatusBadRequest, "invalid id")
	}

	s, err := h.uc.GetStore(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, s, "")
}
