package models

import "time"

// DeliveryPartner is the courier-side actor. IsBusy is the reservation flag:
// a partner holds at most one non-delivered order at a time.
type DeliveryPartner struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Phone        string `gorm:"type:varchar(20);unique;not null" json:"phone"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
	IsBusy       bool   `gorm:"not null;default:false" json:"is_busy"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
