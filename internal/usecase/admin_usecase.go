package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// 管理者ダッシュボードとユーザー管理。
type AdminUsecase struct {
	users     repo.UserRepository
	products  repo.ProductRepository
	orders    repo.OrderRepository
	auditRepo repo.AuditLogRepository
}

func NewAdminUsecase(
	users repo.UserRepository,
	products repo.ProductRepository,
	orders repo.OrderRepository,
	auditRepo repo.AuditLogRepository,
) *AdminUsecase {
	return &AdminUsecase{
		users:     users,
		products:  products,
		orders:    orders,
		auditRepo: auditRepo,
	}
}

type DashboardStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalProducts int64 `json:"total_products"`
	TotalOrders   int64 `json:"total_orders"`
	Revenue       int64 `json:"revenue"`
}

func (u *AdminUsecase) GetStats(ctx context.Context) (DashboardStats, error) {
	totalUsers, err := u.users.Count(ctx)
	if err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	totalProducts, err := u.products.Count(ctx)
	if err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	totalOrders, err := u.orders.Count(ctx)
	if err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	revenue, err := u.orders.SumTotal(ctx)
	if err != nil {
		return DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DashboardStats{
		TotalUsers:    totalUsers,
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		Revenue:       revenue,
	}, nil
}

func (u *AdminUsecase) ListUsers(ctx context.Context) ([]UserOutput, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return []UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]UserOutput, 0, len(users))
	for i := range users {
		outs = append(outs, toUserOutput(&users[i]))
	}
	return outs, nil
}

// 権限変更（user/admin以外は拒否）。監査ログを残す。
func (u *AdminUsecase) UpdateUserRole(ctx context.Context, actorAdminUserID int64, targetUserID int64, newRole string) (UserOutput, error) {
	if actorAdminUserID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if targetUserID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	role := model.Role(strings.TrimSpace(newRole))
	switch role {
	case model.RoleUser, model.RoleAdmin:
		// OK
	default:
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	target, err := u.users.FindByID(ctx, targetUserID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	beforeRole := string(target.Role)

	if err := u.users.UpdateRole(ctx, targetUserID, role); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return UserOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
		}
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	beforeJSON := `{"role":"` + beforeRole + `"}`
	afterJSON := `{"role":"` + string(role) + `"}`
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionUpdateUserRole,
		ResourceType: model.AuditResourceUser,
		ResourceID:   targetUserID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	target.Role = role
	return toUserOutput(target), nil
}
