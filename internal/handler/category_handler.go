package handler

import (
	"net/http"

	"shop/internal/domain/model"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /categories の公開API（一覧のみ。管理はAdminCategoryHandler）
type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type CategoryListResponse struct {
	Success    bool             `json:"success"`
	Categories []model.Category `json:"categories"`
}

type CategoryResponse struct {
	Success  bool           `json:"success"`
	Category model.Category `json:"category"`
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/categories", h.list)
}

func (h *CategoryHandler) list(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CategoryListResponse{Success: true, Categories: out})
}
