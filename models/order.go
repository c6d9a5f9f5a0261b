package models

import "time"

// Order is a customer's checked-out cart. Status and payment fields are the
// only mutable columns after creation; everything priced is snapshotted into
// order items at creation time.
type Order struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	UserID            uint             `gorm:"not null;index" json:"user_id"`
	User              User             `gorm:"foreignKey:UserID" json:"-"`
	DeliveryAddressID uint             `gorm:"not null" json:"delivery_address_id"`
	DeliveryAddress   Address          `gorm:"foreignKey:DeliveryAddressID" json:"delivery_address"`
	TotalAmount       float64          `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	Status            string           `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus     string           `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentID         *string          `gorm:"type:varchar(64)" json:"payment_id,omitempty"`
	DeliveryPartnerID *uint            `gorm:"index" json:"delivery_partner_id,omitempty"`
	DeliveryPartner   *DeliveryPartner `gorm:"foreignKey:DeliveryPartnerID" json:"delivery_partner,omitempty"`
	CreatedAt         time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"not null" json:"updated_at"`
	OrderItems        []OrderItem      `gorm:"foreignKey:OrderID" json:"order_items"`
}
