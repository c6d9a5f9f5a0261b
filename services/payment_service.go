package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/food-delivery-app/models"
	"gorm.io/gorm"
)

// PaymentService confirms verified payments and hands the order to the
// assignment service, all inside one transaction.
type PaymentService struct {
	db       *gorm.DB
	razorpay *RazorpayService
	assigner *AssignmentService
}

func NewPaymentService(db *gorm.DB, razorpay *RazorpayService) *PaymentService {
	return &PaymentService{
		db:       db,
		razorpay: razorpay,
		assigner: NewAssignmentService(),
	}
}

type ConfirmPaymentInput struct {
	ProviderOrderID   string
	ProviderPaymentID string
	Signature         string
	OrderID           uint
}

// ConfirmPayment verifies the provider signature, then flips the order to
// confirmed/completed and tries to reserve a delivery partner. A signature
// mismatch mutates nothing. Any error inside the transaction rolls the whole
// confirmation back.
//
// Returns the assigned partner, or nil when none was available (the order
// stays confirmed and an operator retries assignment later).
func (s *PaymentService) ConfirmPayment(in ConfirmPaymentInput) (*models.DeliveryPartner, error) {
	if !s.razorpay.VerifyPaymentSignature(in.ProviderOrderID, in.ProviderPaymentID, in.Signature) {
		return nil, ErrSignatureMismatch
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var order models.Order
	if err := tx.First(&order, in.OrderID).Error; err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: order %d", ErrInvalidReference, in.OrderID)
		}
		return nil, err
	}

	if err := tx.Model(&order).Updates(map[string]interface{}{
		"status":         OrderStatusConfirmed,
		"payment_status": PaymentStatusCompleted,
		"payment_id":     in.ProviderPaymentID,
		"updated_at":     time.Now(),
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	partner, err := s.assigner.AssignPartner(tx, in.OrderID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return partner, nil
}
