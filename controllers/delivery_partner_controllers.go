package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-delivery-app/models"
	"github.com/yeremiapane/food-delivery-app/services"
	"github.com/yeremiapane/food-delivery-app/tracking"
	"github.com/yeremiapane/food-delivery-app/utils"
)

type DeliveryPartnerController struct {
	DB       *gorm.DB
	delivery *services.DeliveryService
}

func NewDeliveryPartnerController(db *gorm.DB) *DeliveryPartnerController {
	return &DeliveryPartnerController{
		DB:       db,
		delivery: services.NewDeliveryService(db),
	}
}

// Login -> POST /delivery/login. Verifies against bcrypt or a legacy SHA-256
// digest; legacy hashes are upgraded in place on success.
func (dc *DeliveryPartnerController) Login(c *gin.Context) {
	var input struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("phone and password are required"))
		return
	}

	var partner models.DeliveryPartner
	if err := dc.DB.Where("phone = ? AND is_active = ?", input.Phone, true).
		First(&partner).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	verifier := services.VerifierForHash(partner.PasswordHash)
	if !verifier.Verify(input.Password, partner.PasswordHash) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if verifier.NeedsUpgrade() {
		if newHash, err := services.HashPassword(input.Password); err == nil {
			if err := dc.DB.Model(&partner).Update("password_hash", newHash).Error; err != nil {
				utils.ErrorLogger.Printf("Failed to upgrade password hash for partner %d: %v", partner.ID, err)
			}
		}
	}

	token, err := utils.GeneratePartnerToken(partner.ID, partner.Phone)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Delivery partner %d logged in", partner.ID)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"partner": gin.H{
			"id":      partner.ID,
			"name":    partner.Name,
			"phone":   partner.Phone,
			"is_busy": partner.IsBusy,
		},
	})
}

// GetAssignedOrders -> GET /delivery/orders. The partner's orders with
// nested items and addons.
func (dc *DeliveryPartnerController) GetAssignedOrders(c *gin.Context) {
	partnerID := c.GetUint("partner_id")

	orders, err := dc.delivery.GetAssignedOrders(partnerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Assigned orders", orders)
}

// UpdateOrderStatus -> PUT /delivery/orders/:order_id/status. Partner-driven
// state machine; delivered releases the partner.
func (dc *DeliveryPartnerController) UpdateOrderStatus(c *gin.Context) {
	partnerID := c.GetUint("partner_id")

	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status is required"))
		return
	}

	order, err := dc.delivery.UpdateOrderStatus(partnerID, uint(orderID), body.Status)
	if err != nil {
		utils.ErrorLogger.Printf("Status update rejected for order %d by partner %d: %v", orderID, partnerID, err)
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %d -> %s by partner %d", order.ID, order.Status, partnerID)
	tracking.BroadcastStatusUpdate(*order)

	utils.RespondJSON(c, http.StatusOK, "Order status updated successfully", gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	})
}
