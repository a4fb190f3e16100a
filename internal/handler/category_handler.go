package handler

import (
	"net/http"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	"github.com/kitchenchain/franchise-api/internal/middleware"
	"github.com/kitchenchain/franchise-api/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	uc *usecase.CatalogUsecase
}

func NewCategoryHandler(uc *usecase.CatalogUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type CategoryCreateRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// reads are public; creation is ADMIN only
func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	g := e.Group("/categories")

	g.POST("", h.create, middleware.AuthJWT(jwtSecret), middleware.RequireRoles(model.RoleAdmin))
	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *CategoryHandler) create(c echo.Context) error {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		return writeFail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req CategoryCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	cat, err := h.uc.CreateCategory(c.Request().Context(), actor.ID, usecase.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusCreated, cat, "category created")
}

func (h *CategoryHandler) list(c echo.Context) error {
	items, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, items, "")
}

func (h *CategoryHandler) detail(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return writeFail(c, http.StatusBadRequest, "invalid id")
	}

	cat, err := h.uc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, cat, "")
}
