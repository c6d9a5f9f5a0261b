package models

import "time"

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order        Order            `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FoodID       uint             `gorm:"not null" json:"food_id"`
	Food         Food             `gorm:"foreignKey:FoodID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"food"`
	Quantity     int              `gorm:"not null" json:"quantity"`
	PriceAtOrder float64          `gorm:"type:decimal(10,2);not null" json:"price_at_order"`
	Addons       []OrderItemAddon `gorm:"foreignKey:OrderItemID" json:"addons"`
	CreatedAt    time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"not null" json:"updated_at"`
}
