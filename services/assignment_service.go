package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/food-delivery-app/models"
	"gorm.io/gorm"
)

const LogStatusAssigned = "assigned"

// AssignmentService reserves a delivery partner for a freshly paid order.
// It always operates inside the caller's transaction so the selection, the
// busy-flag flip and the order update commit or roll back together.
type AssignmentService struct{}

func NewAssignmentService() *AssignmentService {
	return &AssignmentService{}
}

// AssignPartner picks the least-loaded active idle partner (fewest orders
// ever assigned, then earliest created_at) and reserves them for the order.
// Returns (nil, nil) when no partner is available; the order then stays
// confirmed and unassigned for an operator to retry later.
func (s *AssignmentService) AssignPartner(tx *gorm.DB, orderID uint) (*models.DeliveryPartner, error) {
	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: order %d", ErrInvalidReference, orderID)
		}
		return nil, err
	}
	if order.DeliveryPartnerID != nil {
		return nil, ErrAlreadyAssigned
	}

	var partner models.DeliveryPartner
	err := tx.Raw(`
		SELECT dp.*
		  FROM delivery_partners dp
		  LEFT JOIN (
			  SELECT delivery_partner_id, COUNT(*) AS deliveries
			  FROM orders
			  WHERE delivery_partner_id IS NOT NULL
			  GROUP BY delivery_partner_id
		  ) oc ON oc.delivery_partner_id = dp.id
		 WHERE dp.is_active = ? AND dp.is_busy = ?
		 ORDER BY COALESCE(oc.deliveries, 0) ASC, dp.created_at ASC
		 LIMIT 1`, true, false).Scan(&partner).Error
	if err != nil {
		return nil, err
	}
	if partner.ID == 0 {
		return nil, nil
	}

	// Conditional update is the reservation: if another transaction grabbed
	// this partner first, zero rows are affected and we back off.
	res := tx.Model(&models.DeliveryPartner{}).
		Where("id = ? AND is_busy = ?", partner.ID, false).
		Updates(map[string]interface{}{"is_busy": true, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	if err := tx.Model(&models.Order{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"delivery_partner_id": partner.ID,
			"status":              OrderStatusOnTheWay,
			"updated_at":          time.Now(),
		}).Error; err != nil {
		return nil, err
	}

	logEntry := models.OrderDeliveryLog{
		OrderID:   orderID,
		PartnerID: partner.ID,
		Status:    LogStatusAssigned,
		CreatedAt: time.Now(),
	}
	if err := tx.Create(&logEntry).Error; err != nil {
		return nil, err
	}

	partner.IsBusy = true
	return &partner, nil
}
