package repository

import (
	"context"

	"shop/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// プロフィール・住所・権限の更新
	Update(ctx context.Context, user *model.User) error

	//管理者用の一覧（新しい順）
	List(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, userID int64, role model.Role) error
	Count(ctx context.Context) (int64, error)
}
