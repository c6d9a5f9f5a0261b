package models

import "time"

// OrderDeliveryLog is an append-only audit trail. Rows are only ever
// inserted, never updated or deleted.
type OrderDeliveryLog struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	Order     Order           `gorm:"foreignKey:OrderID" json:"-"`
	PartnerID uint            `gorm:"not null;index" json:"partner_id"`
	Partner   DeliveryPartner `gorm:"foreignKey:PartnerID" json:"-"`
	Status    string          `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
}
