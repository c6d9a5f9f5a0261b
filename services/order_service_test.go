package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-delivery-app/models"
)

func setupTestDBForOrders(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Address{}, &models.Category{}, &models.Food{},
		&models.Addon{}, &models.Order{}, &models.OrderItem{}, &models.OrderItemAddon{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db.Create(&models.User{Name: "Asha", Email: "asha@example.com", Password: "x"})
	db.Create(&models.Address{UserID: 1, Title: "Home", Details: "12 MG Road"})
	db.Create(&models.Category{Name: "Mains"})
	db.Create(&models.Food{CategoryID: 1, Name: "Paneer Wrap", Price: 100, IsActive: true})
	db.Create(&models.Food{CategoryID: 1, Name: "Biryani", Price: 150, IsActive: true})
	db.Create(&models.Addon{Name: "Extra Cheese", Price: 20, IsActive: true})
	return db
}

func TestCreateOrderTotal(t *testing.T) {
	db := setupTestDBForOrders(t)
	svc := NewOrderService(db)

	// (100)*1 + (150+20)*2 = 440
	order, err := svc.CreateOrder(CreateOrderInput{
		UserID:            1,
		DeliveryAddressID: 1,
		Items: []CartItem{
			{FoodID: 1, Quantity: 1},
			{FoodID: 2, Quantity: 2, Addons: []CartAddon{{ID: 1}}},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 440.0, order.TotalAmount)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, PaymentStatusPending, order.PaymentStatus)

	var itemCount, addonCount int64
	db.Model(&models.OrderItem{}).Count(&itemCount)
	db.Model(&models.OrderItemAddon{}).Count(&addonCount)
	assert.Equal(t, int64(2), itemCount)
	assert.Equal(t, int64(1), addonCount)
}

func TestCreateOrderValidation(t *testing.T) {
	db := setupTestDBForOrders(t)
	svc := NewOrderService(db)

	_, err := svc.CreateOrder(CreateOrderInput{UserID: 1, DeliveryAddressID: 1})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.CreateOrder(CreateOrderInput{
		UserID: 1,
		Items:  []CartItem{{FoodID: 1, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.CreateOrder(CreateOrderInput{
		UserID:            1,
		DeliveryAddressID: 1,
		Items:             []CartItem{{FoodID: 1, Quantity: 0}},
	})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestCreateOrderInvalidReferenceCreatesNothing(t *testing.T) {
	db := setupTestDBForOrders(t)
	svc := NewOrderService(db)

	_, err := svc.CreateOrder(CreateOrderInput{
		UserID:            1,
		DeliveryAddressID: 1,
		Items: []CartItem{
			{FoodID: 1, Quantity: 1},
			{FoodID: 999, Quantity: 1},
		},
	})
	assert.True(t, errors.Is(err, ErrInvalidReference))

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
}

func TestCreateOrderSnapshotImmutability(t *testing.T) {
	db := setupTestDBForOrders(t)
	svc := NewOrderService(db)

	order, err := svc.CreateOrder(CreateOrderInput{
		UserID:            1,
		DeliveryAddressID: 1,
		Items:             []CartItem{{FoodID: 1, Quantity: 1, Addons: []CartAddon{{ID: 1}}}},
	})
	assert.NoError(t, err)

	// Raise live catalog prices after the order exists
	db.Model(&models.Food{}).Where("id = ?", 1).Update("price", 500.0)
	db.Model(&models.Addon{}).Where("id = ?", 1).Update("price", 99.0)

	var item models.OrderItem
	assert.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.Equal(t, 100.0, item.PriceAtOrder)

	var itemAddon models.OrderItemAddon
	assert.NoError(t, db.Where("order_item_id = ?", item.ID).First(&itemAddon).Error)
	assert.Equal(t, 20.0, itemAddon.Price)
}

func TestCreateOrderAtomicRollback(t *testing.T) {
	db := setupTestDBForOrders(t)
	svc := NewOrderService(db)

	// Simulated fault mid-transaction: the addon insert fails because its
	// table is gone. Nothing from the attempt may persist.
	assert.NoError(t, db.Migrator().DropTable(&models.OrderItemAddon{}))

	_, err := svc.CreateOrder(CreateOrderInput{
		UserID:            1,
		DeliveryAddressID: 1,
		Items:             []CartItem{{FoodID: 1, Quantity: 1, Addons: []CartAddon{{ID: 1}}}},
	})
	assert.Error(t, err)

	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)
}
