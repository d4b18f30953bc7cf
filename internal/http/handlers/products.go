package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"skucraft/internal/platform"
)

// ProductsHandler exposes the read-only catalog fetch the selection UI
// works from. Records are never stored locally.
type ProductsHandler struct {
	client *platform.Client
}

// NewProductsHandler creates a new products handler
func NewProductsHandler(client *platform.Client) *ProductsHandler {
	return &ProductsHandler{client: client}
}

// List returns the flattened variant list for the whole catalog
// @Summary List catalog variants
// @Tags products
// @Produce json
// @Success 200 {array} models.ProductVariant
// @Failure 502 {object} map[string]string
// @Router /variants [get]
func (h *ProductsHandler) List(c echo.Context) error {
	variants, err := h.client.ListAllVariants(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, variants)
}

// FetchRequest names the products to fetch explicitly.
type FetchRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1"`
}

// Fetch returns the variants of an explicit product list
// @Summary Fetch variants for specific products
// @Tags products
// @Accept json
// @Produce json
// @Param request body FetchRequest true "Product ids"
// @Success 200 {array} models.ProductVariant
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /variants/fetch [post]
func (h *ProductsHandler) Fetch(c echo.Context) error {
	var req FetchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	variants, err := h.client.GetVariantsByProducts(c.Request().Context(), req.ProductIDs)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, variants)
}
