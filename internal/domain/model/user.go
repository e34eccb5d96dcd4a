package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// 配送先住所。ユーザーに埋め込みで持つ（注文時のデフォルト入力に使う）。
type Address struct {
	City            string `gorm:"type:varchar(100)" json:"city"`
	District        string `gorm:"type:varchar(100)" json:"district"`
	Khoroo          string `gorm:"type:varchar(100)" json:"khoroo"`
	DeliveryAddress string `gorm:"type:varchar(255)" json:"delivery_address"`
	AdditionalInfo  string `gorm:"type:varchar(255)" json:"additional_info"`
}

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber  string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"phone_number"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Address      Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
