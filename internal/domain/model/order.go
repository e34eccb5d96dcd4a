package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 5つのステータス以外は受け付けない
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentPayLater       PaymentMethod = "pay_later"
	PaymentPaidPersonally PaymentMethod = "paid_personally"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
)

// OrderCodeはユーザー向けの参照番号（ORD-<unix ms>-<0..999>）。
// 生成は確率的なのでuniqueIndexで衝突を弾く。
type Order struct {
	ID              int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64         `gorm:"not null;index" json:"user_id"`
	Status          OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Total           int64         `gorm:"not null" json:"total"`
	DeliveryAddress string        `gorm:"type:varchar(255);not null" json:"delivery_address"`
	AdditionalInfo  string        `gorm:"type:varchar(255)" json:"additional_info"`
	PaymentMethod   PaymentMethod `gorm:"type:varchar(30);not null" json:"payment_method"`
	OrderCode       string        `gorm:"type:varchar(40);not null;uniqueIndex" json:"order_code"`
	CreatedAt       time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
