package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/food-delivery-app/models"
	"gorm.io/gorm"
)

// Statuses a delivery partner may set on an order they hold. Everything else
// (cancellation, confirmation) belongs to other actors.
var partnerSettableStatuses = map[string]bool{
	OrderStatusOnTheWay:  true,
	OrderStatusDelivered: true,
}

// DeliveryService enforces partner-driven status transitions and releases
// partner capacity on completion.
type DeliveryService struct {
	db *gorm.DB
}

func NewDeliveryService(db *gorm.DB) *DeliveryService {
	return &DeliveryService{db: db}
}

// UpdateOrderStatus applies a partner-initiated transition. Only the partner
// currently holding the order may transition it; delivered and cancelled are
// terminal. Marking delivered clears the partner's busy flag and appends a
// delivery log row in the same transaction.
func (s *DeliveryService) UpdateOrderStatus(partnerID, orderID uint, status string) (*models.Order, error) {
	if !partnerSettableStatuses[status] {
		return nil, fmt.Errorf("%w: status must be on_the_way or delivered", ErrValidation)
	}

	var order models.Order
	if err := s.db.Where("id = ? AND delivery_partner_id = ?", orderID, partnerID).
		First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotAssigned
		}
		return nil, err
	}

	if order.Status == OrderStatusDelivered || order.Status == OrderStatusCancelled {
		return nil, fmt.Errorf("%w: order is already %s", ErrTerminalStatus, order.Status)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Model(&models.Order{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Delivered frees the partner for new assignments
	if status == OrderStatusDelivered {
		if err := tx.Model(&models.DeliveryPartner{}).Where("id = ?", partnerID).
			Updates(map[string]interface{}{"is_busy": false, "updated_at": time.Now()}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	logEntry := models.OrderDeliveryLog{
		OrderID:   orderID,
		PartnerID: partnerID,
		Status:    status,
		CreatedAt: time.Now(),
	}
	if err := tx.Create(&logEntry).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	order.Status = status
	return &order, nil
}

// GetAssignedOrders lists a partner's orders with nested items and addons,
// newest first.
func (s *DeliveryService) GetAssignedOrders(partnerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("OrderItems.Food").
		Preload("OrderItems.Addons.Addon").
		Preload("DeliveryAddress").
		Where("delivery_partner_id = ?", partnerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
