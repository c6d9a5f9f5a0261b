package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-delivery-app/models"
	"github.com/yeremiapane/food-delivery-app/utils"
	"gorm.io/gorm"
)

// DeliveryPartnerAuth validates the partner token and re-checks the partner
// row on every call. A token alone is not enough: a partner deactivated
// after login must lose access immediately, not at token expiry.
func DeliveryPartnerAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParsePartnerToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		var partner models.DeliveryPartner
		if err := db.Where("id = ? AND is_active = ?", claims.PartnerID, true).
			First(&partner).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("partner account inactive or not found"))
			c.Abort()
			return
		}

		c.Set("partner_id", partner.ID)
		c.Set("partner_phone", partner.Phone)

		c.Next()
	}
}
