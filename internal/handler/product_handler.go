package handler

import (
	"net/http"
	"strconv"

	"shop/internal/domain/model"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type ProductListResponse struct {
	Success  bool            `json:"success"`
	Products []model.Product `json:"products"`
}

type ProductResponse struct {
	Success bool          `json:"success"`
	Product model.Product `json:"product"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/products")

	g.GET("", h.list)
	g.GET("/featured", h.featured)
	g.GET("/discounted", h.discounted)
	g.GET("/category/:category", h.byCategory)
	g.GET("/:id", h.detail)
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ProductListResponse{Success: true, Products: out})
}

func (h *ProductHandler) featured(c echo.Context) error {
	out, err := h.uc.ListFeaturedProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ProductListResponse{Success: true, Products: out})
}

func (h *ProductHandler) discounted(c echo.Context) error {
	out, err := h.uc.ListDiscountedProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ProductListResponse{Success: true, Products: out})
}

func (h *ProductHandler) byCategory(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context(), c.Param("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ProductListResponse{Success: true, Products: out})
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	out, err := h.uc.GetProductDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ProductResponse{Success: true, Product: out})
}
