package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-delivery-app/models"
)

func setupTestDBForPricing(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Food{}, &models.Addon{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db.Create(&models.Category{Name: "Mains"})
	db.Create(&models.Food{CategoryID: 1, Name: "Paneer Wrap", Price: 100, IsActive: true})
	db.Create(&models.Food{CategoryID: 1, Name: "Biryani", Price: 150, IsActive: true})
	db.Create(&models.Food{CategoryID: 1, Name: "Old Special", Price: 80, IsActive: false})
	db.Create(&models.Addon{Name: "Extra Cheese", Price: 20, IsActive: true})
	db.Create(&models.Addon{Name: "Discontinued Dip", Price: 10, IsActive: false})
	return db
}

func TestResolveFoodPrices(t *testing.T) {
	db := setupTestDBForPricing(t)
	pricing := NewPricingService(db)

	prices, err := pricing.ResolveFoodPrices([]uint{1, 2})
	assert.NoError(t, err)
	assert.Equal(t, 100.0, prices[1])
	assert.Equal(t, 150.0, prices[2])
}

func TestResolveFoodPricesUnknownID(t *testing.T) {
	db := setupTestDBForPricing(t)
	pricing := NewPricingService(db)

	_, err := pricing.ResolveFoodPrices([]uint{1, 999})
	assert.True(t, errors.Is(err, ErrInvalidReference))
}

func TestResolveFoodPricesInactiveRow(t *testing.T) {
	db := setupTestDBForPricing(t)
	pricing := NewPricingService(db)

	// Inactive food must abort resolution, never be silently dropped
	_, err := pricing.ResolveFoodPrices([]uint{3})
	assert.True(t, errors.Is(err, ErrInvalidReference))
}

func TestResolveAddonPrices(t *testing.T) {
	db := setupTestDBForPricing(t)
	pricing := NewPricingService(db)

	prices, err := pricing.ResolveAddonPrices([]uint{1})
	assert.NoError(t, err)
	assert.Equal(t, 20.0, prices[1])

	_, err = pricing.ResolveAddonPrices([]uint{2})
	assert.True(t, errors.Is(err, ErrInvalidReference))
}

func TestResolveEmptySets(t *testing.T) {
	db := setupTestDBForPricing(t)
	pricing := NewPricingService(db)

	foodPrices, err := pricing.ResolveFoodPrices(nil)
	assert.NoError(t, err)
	assert.Empty(t, foodPrices)

	addonPrices, err := pricing.ResolveAddonPrices(nil)
	assert.NoError(t, err)
	assert.Empty(t, addonPrices)
}
