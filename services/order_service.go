package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/food-delivery-app/models"
	"gorm.io/gorm"
)

// Order lifecycle statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusOnTheWay  = "on_the_way"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

type CartAddon struct {
	ID uint `json:"id"`
}

type CartItem struct {
	FoodID   uint        `json:"food_id"`
	Quantity int         `json:"quantity"`
	Addons   []CartAddon `json:"addons"`
}

type CreateOrderInput struct {
	UserID            uint
	DeliveryAddressID uint
	Items             []CartItem
}

// OrderService builds order aggregates: validates the cart, snapshots
// current prices and persists order + items + addons as one unit.
type OrderService struct {
	db      *gorm.DB
	pricing *PricingService
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:      db,
		pricing: NewPricingService(db),
	}
}

// CreateOrder persists the whole aggregate in one transaction. Any failure
// rolls everything back; a partial order is never observable.
func (s *OrderService) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	if in.UserID == 0 || in.DeliveryAddressID == 0 || len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: user_id, delivery_address_id and items are required", ErrValidation)
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
	}

	// Batched price resolution: one lookup per distinct id set, not per line
	foodPrices, err := s.pricing.ResolveFoodPrices(distinctFoodIDs(in.Items))
	if err != nil {
		return nil, err
	}
	addonPrices, err := s.pricing.ResolveAddonPrices(distinctAddonIDs(in.Items))
	if err != nil {
		return nil, err
	}

	var total float64
	for _, item := range in.Items {
		var addonTotal float64
		for _, ad := range item.Addons {
			addonTotal += addonPrices[ad.ID]
		}
		total += (foodPrices[item.FoodID] + addonTotal) * float64(item.Quantity)
	}

	order := models.Order{
		UserID:            in.UserID,
		DeliveryAddressID: in.DeliveryAddressID,
		TotalAmount:       total,
		Status:            OrderStatusPending,
		PaymentStatus:     PaymentStatusPending,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, item := range in.Items {
		orderItem := models.OrderItem{
			OrderID:      order.ID,
			FoodID:       item.FoodID,
			Quantity:     item.Quantity,
			PriceAtOrder: foodPrices[item.FoodID],
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		for _, ad := range item.Addons {
			itemAddon := models.OrderItemAddon{
				OrderItemID: orderItem.ID,
				AddonID:     ad.ID,
				Price:       addonPrices[ad.ID],
				CreatedAt:   time.Now(),
			}
			if err := tx.Create(&itemAddon).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func distinctFoodIDs(items []CartItem) []uint {
	seen := make(map[uint]bool)
	var ids []uint
	for _, item := range items {
		if !seen[item.FoodID] {
			seen[item.FoodID] = true
			ids = append(ids, item.FoodID)
		}
	}
	return ids
}

func distinctAddonIDs(items []CartItem) []uint {
	seen := make(map[uint]bool)
	var ids []uint
	for _, item := range items {
		for _, ad := range item.Addons {
			if !seen[ad.ID] {
				seen[ad.ID] = true
				ids = append(ids, ad.ID)
			}
		}
	}
	return ids
}
