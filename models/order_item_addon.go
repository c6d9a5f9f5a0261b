package models

import "time"

type OrderItemAddon struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderItemID uint      `gorm:"not null;index" json:"order_item_id"`
	OrderItem   OrderItem `gorm:"foreignKey:OrderItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AddonID     uint      `gorm:"not null" json:"addon_id"`
	Addon       Addon     `gorm:"foreignKey:AddonID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"addon"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
