package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-delivery-app/models"
	"github.com/yeremiapane/food-delivery-app/utils"
	"gorm.io/gorm"
)

type FoodController struct {
	DB *gorm.DB
}

func NewFoodController(db *gorm.DB) *FoodController {
	return &FoodController{DB: db}
}

// GetAllFoods -> active catalog, optionally filtered by category
func (fc *FoodController) GetAllFoods(c *gin.Context) {
	query := fc.DB.Preload("Category").Where("is_active = ?", true)
	if category := c.Query("category_id"); category != "" {
		query = query.Where("category_id = ?", category)
	}

	var foods []models.Food
	if err := query.Find(&foods).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of foods", foods)
}

// GetAllCategories
func (fc *FoodController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := fc.DB.Find(&categories).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// GetAllAddons -> active add-ons for the cart UI
func (fc *FoodController) GetAllAddons(c *gin.Context) {
	var addons []models.Addon
	if err := fc.DB.Where("is_active = ?", true).Find(&addons).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of addons", addons)
}
