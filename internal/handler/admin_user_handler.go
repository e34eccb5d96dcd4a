package handler

import (
	"net/http"
	"strconv"

	"shop/internal/config"
	"shop/internal/middleware"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ダッシュボードとユーザー管理の管理者API
type AdminUserHandler struct {
	uc *usecase.AdminUsecase
}

func NewAdminUserHandler(uc *usecase.AdminUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

type RoleUpdateRequest struct {
	Role string `json:"role"`
}

type StatsResponse struct {
	Success bool                   `json:"success"`
	Stats   usecase.DashboardStats `json:"stats"`
}

type UserListResponse struct {
	Success bool                 `json:"success"`
	Users   []usecase.UserOutput `json:"users"`
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/stats", h.stats)
	admin.GET("/users", h.listUsers)
	admin.PUT("/users/:id/role", h.updateRole)
}

func (h *AdminUserHandler) stats(c echo.Context) error {
	out, err := h.uc.GetStats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, StatsResponse{Success: true, Stats: out})
}

func (h *AdminUserHandler) listUsers(c echo.Context) error {
	out, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, UserListResponse{Success: true, Users: out})
}

func (h *AdminUserHandler) updateRole(c echo.Context) error {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}

	var req RoleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}

	out, err := h.uc.UpdateUserRole(c.Request().Context(), adminID, targetID, req.Role)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, UserResponse{Success: true, User: out})
}
