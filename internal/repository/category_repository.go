package repository

import (
	"context"

	"shop/internal/domain/model"
)

type CategoryRepository interface {
	//名前順の一覧
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	//重複チェック用
	FindByName(ctx context.Context, name string) (model.Category, bool, error)

	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id int64) error
}
