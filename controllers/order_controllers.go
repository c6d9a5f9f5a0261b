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

type OrderController struct {
	DB     *gorm.DB
	orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:     db,
		orders: services.NewOrderService(db),
	}
}

// CreateOrder -> POST /orders. Persists the full cart (order + items +
// addons, prices snapshotted) and answers {orderId, total}.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type reqBody struct {
		UserID            uint                `json:"user_id"`
		Items             []services.CartItem `json:"items"`
		DeliveryAddressID uint                `json:"delivery_address_id"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := oc.orders.CreateOrder(services.CreateOrderInput{
		UserID:            body.UserID,
		DeliveryAddressID: body.DeliveryAddressID,
		Items:             body.Items,
	})
	if err != nil {
		utils.ErrorLogger.Printf("Order creation failed for user %d: %v", body.UserID, err)
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	utils.InfoLogger.Printf("Order %d created for user %d, total %.2f", order.ID, order.UserID, order.TotalAmount)
	tracking.BroadcastOrderCreated(*order)

	c.JSON(http.StatusCreated, gin.H{
		"orderId": order.ID,
		"total":   order.TotalAmount,
		"message": "Order created successfully. Proceed to payment.",
	})
}

// GetUserOrders -> order history for one user, newest first
func (oc *OrderController) GetUserOrders(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	var orders []models.Order
	if err := oc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User orders", orders)
}

// GetOrderByID -> one order with nested items and addons
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems.Food").
		Preload("OrderItems.Addons.Addon").
		Preload("DeliveryAddress").
		First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}
