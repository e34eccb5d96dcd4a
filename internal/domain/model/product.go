package model

import (
	"time"

	"gorm.io/gorm"
)

// 商品の表示用フラグ
type ProductFeatures struct {
	IsNew        bool `gorm:"not null;default:false" json:"is_new"`
	IsFeatured   bool `gorm:"not null;default:false" json:"is_featured"`
	IsDiscounted bool `gorm:"not null;default:false" json:"is_discounted"`
}

// Priceは最小通貨単位の整数。Stockは負になってはいけない
// （減算は必ず条件付きUPDATEで行う）。
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       int64           `gorm:"not null" json:"price"`
	Category    string          `gorm:"type:varchar(255);not null;index" json:"category"`
	Stock       int64           `gorm:"not null" json:"stock"`
	Features    ProductFeatures `gorm:"embedded;embeddedPrefix:feature_" json:"features"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
