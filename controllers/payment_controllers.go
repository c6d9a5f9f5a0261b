package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-delivery-app/models"
	"github.com/yeremiapane/food-delivery-app/services"
	"github.com/yeremiapane/food-delivery-app/tracking"
	"github.com/yeremiapane/food-delivery-app/utils"
)

type PaymentController struct {
	DB       *gorm.DB
	razorpay *services.RazorpayService
	payments *services.PaymentService
}

func NewPaymentController(db *gorm.DB, razorpay *services.RazorpayService) *PaymentController {
	return &PaymentController{
		DB:       db,
		razorpay: razorpay,
		payments: services.NewPaymentService(db, razorpay),
	}
}

// CreatePaymentOrder -> POST /payments/order. Registers the amount with the
// payment provider and returns what the checkout client needs.
func (pc *PaymentController) CreatePaymentOrder(c *gin.Context) {
	var body struct {
		Amount  float64 `json:"amount" binding:"required,gt=0"`
		OrderID uint    `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	var order models.Order
	if err := pc.DB.First(&order, body.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "order not found"})
		return
	}

	providerOrder, err := pc.razorpay.CreateProviderOrder(body.Amount, body.OrderID)
	if err != nil {
		utils.ErrorLogger.Printf("Provider order creation failed for order %d: %v", body.OrderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Unable to create payment order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order": gin.H{
			"id":       providerOrder.ID,
			"amount":   providerOrder.Amount,
			"currency": providerOrder.Currency,
			"key_id":   pc.razorpay.KeyID(),
		},
	})
}

// VerifyPayment -> POST /payments/verify. The signature gate: a mismatch
// mutates nothing; a match confirms the order and assigns a partner in one
// transaction.
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	var body struct {
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
		OrderID           uint   `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	partner, err := pc.payments.ConfirmPayment(services.ConfirmPaymentInput{
		ProviderOrderID:   body.RazorpayOrderID,
		ProviderPaymentID: body.RazorpayPaymentID,
		Signature:         body.RazorpaySignature,
		OrderID:           body.OrderID,
	})
	if err != nil {
		utils.ErrorLogger.Printf("Payment verification failed for order %d: %v", body.OrderID, err)
		c.JSON(statusForError(err), gin.H{
			"success": false,
			"message": "Payment verification failed",
		})
		return
	}

	utils.InfoLogger.Printf("Payment verified for order %d (payment %s)", body.OrderID, body.RazorpayPaymentID)
	tracking.BroadcastPaymentConfirmed(body.OrderID, body.RazorpayPaymentID)
	if partner != nil {
		tracking.BroadcastPartnerAssigned(body.OrderID, *partner)
	} else {
		utils.InfoLogger.Printf("No delivery partner available for order %d; left unassigned", body.OrderID)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Payment verified successfully",
		"paymentId": body.RazorpayPaymentID,
	})
}
