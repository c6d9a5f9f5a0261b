package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-delivery-app/models"
	"github.com/yeremiapane/food-delivery-app/router"
	"github.com/yeremiapane/food-delivery-app/services"
	"github.com/yeremiapane/food-delivery-app/utils"
)

const integrationKeySecret = "integration-secret"

func TestMain(m *testing.M) {
	// Must be set before the first router is built, which initializes the
	// payment service from the environment.
	os.Setenv("RAZORPAY_KEY_ID", "rzp_test_integration")
	os.Setenv("RAZORPAY_KEY_SECRET", integrationKeySecret)

	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	os.Exit(m.Run())
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Address{},
		&models.Category{}, &models.Food{}, &models.Addon{},
		&models.Order{}, &models.OrderItem{}, &models.OrderItemAddon{},
		&models.DeliveryPartner{}, &models.OrderDeliveryLog{},
	))

	require.NoError(t, db.Create(&models.Category{Name: "Mains"}).Error)
	require.NoError(t, db.Create(&models.Food{CategoryID: 1, Name: "Paneer Wrap", Price: 100, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Food{CategoryID: 1, Name: "Biryani", Price: 150, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Addon{Name: "Extra Raita", Price: 20, IsActive: true}).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("partnerpass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.DeliveryPartner{
		Name: "Ravi", Phone: "9876500001", PasswordHash: string(hash), IsActive: true,
	}).Error)

	return db
}

func doJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func signIntegrationPayment(providerOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(integrationKeySecret))
	mac.Write([]byte(providerOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Walks the full pipeline: register, order, pay, deliver.
func TestOrderToDeliveryPipeline(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	// Customer signs up and logs in
	w := doJSON(r, "POST", "/register", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "secret123", "phone": "9876500099",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, db.Create(&models.Address{UserID: 1, Title: "Home", Details: "12 MG Road"}).Error)

	w = doJSON(r, "POST", "/login", map[string]string{
		"email": "asha@example.com", "password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	userToken := decodeBody(t, w)["data"].(map[string]interface{})["token"].(string)

	// Cart: 2x100 + (150+20)x1 + addon snapshot = 440
	w = doJSON(r, "POST", "/orders", map[string]interface{}{
		"user_id":             1,
		"delivery_address_id": 1,
		"items": []map[string]interface{}{
			{"food_id": 1, "quantity": 2},
			{"food_id": 2, "quantity": 1, "addons": []map[string]interface{}{{"id": 1}}},
		},
	}, userToken)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	assert.Equal(t, float64(440), created["total"])
	orderID := uint(created["orderId"].(float64))

	// Payment verification with a genuine signature confirms and assigns
	providerOrderID := "order_int_1"
	paymentID := "pay_int_1"
	w = doJSON(r, "POST", "/payments/verify", map[string]interface{}{
		"razorpay_order_id":   providerOrderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signIntegrationPayment(providerOrderID, paymentID),
		"order_id":            orderID,
	}, userToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, services.OrderStatusOnTheWay, order.Status)
	assert.Equal(t, services.PaymentStatusCompleted, order.PaymentStatus)
	require.NotNil(t, order.DeliveryPartnerID)
	require.NotNil(t, order.PaymentID)
	assert.Equal(t, paymentID, *order.PaymentID)

	var partner models.DeliveryPartner
	require.NoError(t, db.First(&partner, *order.DeliveryPartnerID).Error)
	assert.True(t, partner.IsBusy)

	// Partner logs in and sees the order
	w = doJSON(r, "POST", "/delivery/login", map[string]string{
		"phone": "9876500001", "password": "partnerpass",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	partnerToken := decodeBody(t, w)["data"].(map[string]interface{})["token"].(string)

	w = doJSON(r, "GET", "/delivery/orders", nil, partnerToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"].([]interface{}), 1)

	// Delivered releases the partner
	w = doJSON(r, "PUT", fmt.Sprintf("/delivery/orders/%d/status", orderID),
		map[string]string{"status": services.OrderStatusDelivered}, partnerToken)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, services.OrderStatusDelivered, order.Status)
	require.NoError(t, db.First(&partner, partner.ID).Error)
	assert.False(t, partner.IsBusy)

	var logs []models.OrderDeliveryLog
	require.NoError(t, db.Where("order_id = ?", orderID).Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, services.LogStatusAssigned, logs[0].Status)
	assert.Equal(t, services.OrderStatusDelivered, logs[1].Status)

	// Delivered is terminal
	w = doJSON(r, "PUT", fmt.Sprintf("/delivery/orders/%d/status", orderID),
		map[string]string{"status": services.OrderStatusOnTheWay}, partnerToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// A forged signature must leave the order untouched.
func TestPipelineRejectsForgedSignature(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	w := doJSON(r, "POST", "/register", map[string]string{
		"name": "Vikram", "email": "vikram@example.com", "password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, db.Create(&models.Address{UserID: 1, Title: "Office", Details: "4 Park St"}).Error)

	w = doJSON(r, "POST", "/login", map[string]string{
		"email": "vikram@example.com", "password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	userToken := decodeBody(t, w)["data"].(map[string]interface{})["token"].(string)

	w = doJSON(r, "POST", "/orders", map[string]interface{}{
		"user_id":             1,
		"delivery_address_id": 1,
		"items":               []map[string]interface{}{{"food_id": 1, "quantity": 1}},
	}, userToken)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := uint(decodeBody(t, w)["orderId"].(float64))

	w = doJSON(r, "POST", "/payments/verify", map[string]interface{}{
		"razorpay_order_id":   "order_int_2",
		"razorpay_payment_id": "pay_int_2",
		"razorpay_signature":  "deadbeef",
		"order_id":            orderID,
	}, userToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, services.OrderStatusPending, order.Status)
	assert.Equal(t, services.PaymentStatusPending, order.PaymentStatus)
	assert.Nil(t, order.DeliveryPartnerID)

	var partner models.DeliveryPartner
	require.NoError(t, db.First(&partner, 1).Error)
	assert.False(t, partner.IsBusy)
}
