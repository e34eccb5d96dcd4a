package repository

import (
	"context"

	"shop/internal/domain/model"
)

type OrderItemRepository interface {
	//注文確定時に明細を一括作成する
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
