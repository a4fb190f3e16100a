package handler

import (
	"net/http"

	"github.com/kitchenchain/franchise-api/internal/domain/model"
	"github.com/kitchenchain/franchise-api/internal/middleware"
	"github.com/kitchenchain/franchise-api/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products catalogue
type ProductHandler struct {
	uc *usecase.CatalogUsecase
}

func NewProductHandler(uc *usecase.CatalogUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type ProductCreateRequest struct {
	CategoryID  int64   `json:"category_id" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required,max=255"`
	UOM         string  `json:"uom" validate:"required"`
	ProductType string  `json:"product_type" validate:"required,oneof=RAW_MATERIAL FINISHED"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=1000"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	g := e.Group("/products")
	g.Use(middleware.AuthJWT(jwtSecret))

	editors := middleware.RequireRoles(model.RoleAdmin, model.RoleManager)

	g.POST("", h.create, editors)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.DELETE("/:id", h.delete, editors)
}

func (h *ProductHandler) create(c echo.Context) error {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		return writeFail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), actor.ID, usecase.CreateProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		UOM:         req.UOM,
		ProductType: req.ProductType,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusCreated, p, "product created")
}

func (h *ProductHandler) list(c echo.Context) error {
	categoryID, ok := optionalInt64(c, "category_id")
	if !ok {
		return writeFail(c, http.StatusBadRequest, "invalid category_id")
	}

	items, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Keyword:     c.QueryParam("keyword"),
		CategoryID:  categoryID,
		ProductType: c.QueryParam("product_type"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, items, "")
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return writeFail(c, http.StatusBadRequest, "invalid id")
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, p, "")
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return writeFail(c, http.StatusBadRequest, "invalid id")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return writeData(c, http.StatusOK, nil, "product deleted")
}
