package services

import (
	"fmt"

	"github.com/yeremiapane/food-delivery-app/models"
	"gorm.io/gorm"
)

// PricingService resolves current catalog prices at order-creation time.
// Only active rows count; a requested id with no active row fails the whole
// resolution so the caller never silently drops an item.
type PricingService struct {
	db *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{db: db}
}

// ResolveFoodPrices returns a price per requested food id, one query for the
// whole set.
func (s *PricingService) ResolveFoodPrices(foodIDs []uint) (map[uint]float64, error) {
	prices := make(map[uint]float64, len(foodIDs))
	if len(foodIDs) == 0 {
		return prices, nil
	}

	var foods []models.Food
	if err := s.db.Where("id IN ? AND is_active = ?", foodIDs, true).Find(&foods).Error; err != nil {
		return nil, err
	}
	for _, f := range foods {
		prices[f.ID] = f.Price
	}

	for _, id := range foodIDs {
		if _, ok := prices[id]; !ok {
			return nil, fmt.Errorf("%w: food %d not found or inactive", ErrInvalidReference, id)
		}
	}
	return prices, nil
}

// ResolveAddonPrices works like ResolveFoodPrices for add-ons.
func (s *PricingService) ResolveAddonPrices(addonIDs []uint) (map[uint]float64, error) {
	prices := make(map[uint]float64, len(addonIDs))
	if len(addonIDs) == 0 {
		return prices, nil
	}

	var addons []models.Addon
	if err := s.db.Where("id IN ? AND is_active = ?", addonIDs, true).Find(&addons).Error; err != nil {
		return nil, err
	}
	for _, a := range addons {
		prices[a.ID] = a.Price
	}

	for _, id := range addonIDs {
		if _, ok := prices[id]; !ok {
			return nil, fmt.Errorf("%w: addon %d not found or inactive", ErrInvalidReference, id)
		}
	}
	return prices, nil
}
