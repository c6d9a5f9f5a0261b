package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

const razorpayAPIBase = "https://api.razorpay.com/v1"

// RazorpayConfig holds Razorpay credentials
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	Currency  string
}

// RazorpayService talks to the Razorpay REST API and verifies payment
// callback signatures. The checkout UI itself is the provider's problem;
// the only contract here is "create an order, verify a signature".
type RazorpayService struct {
	config     *RazorpayConfig
	httpClient *http.Client
	apiBase    string
}

var (
	razorpayService *RazorpayService
	razorpayOnce    sync.Once
)

// GetRazorpayService returns the singleton configured from environment
// variables.
func GetRazorpayService() *RazorpayService {
	razorpayOnce.Do(func() {
		keyID := os.Getenv("RAZORPAY_KEY_ID")
		keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
		currency := os.Getenv("RAZORPAY_CURRENCY")
		if currency == "" {
			currency = "INR"
		}

		razorpayService = NewRazorpayService(&RazorpayConfig{
			KeyID:     keyID,
			KeySecret: keySecret,
			Currency:  currency,
		})
	})
	return razorpayService
}

func NewRazorpayService(config *RazorpayConfig) *RazorpayService {
	return &RazorpayService{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiBase: razorpayAPIBase,
	}
}

// ValidateConfig checks that the credentials required to call the API are set
func (rs *RazorpayService) ValidateConfig() error {
	if rs.config.KeyID == "" {
		return fmt.Errorf("razorpay key id is not set")
	}
	if rs.config.KeySecret == "" {
		return fmt.Errorf("razorpay key secret is not set")
	}
	return nil
}

// KeyID exposes the public key id for checkout clients
func (rs *RazorpayService) KeyID() string {
	return rs.config.KeyID
}

// ProviderOrder is the subset of the Razorpay order object the pipeline needs
type ProviderOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateProviderOrder registers an order with Razorpay. Amount is converted
// to the smallest currency unit (paise).
func (rs *RazorpayService) CreateProviderOrder(amount float64, orderID uint) (*ProviderOrder, error) {
	if err := rs.ValidateConfig(); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"amount":          int64(amount * 100),
		"currency":        rs.config.Currency,
		"receipt":         fmt.Sprintf("order_%d_%s", orderID, uuid.NewString()[:8]),
		"payment_capture": 1,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, rs.apiBase+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(rs.config.KeyID, rs.config.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := rs.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("razorpay order request returned %d: %s", resp.StatusCode, string(raw))
	}

	var providerOrder ProviderOrder
	if err := json.NewDecoder(resp.Body).Decode(&providerOrder); err != nil {
		return nil, fmt.Errorf("failed to decode razorpay response: %w", err)
	}
	return &providerOrder, nil
}

// VerifyPaymentSignature recomputes the HMAC-SHA256 of
// "{provider_order_id}|{provider_payment_id}" with the key secret and
// compares it to the signature the client supplied. This is the payment
// authenticity boundary.
func (rs *RazorpayService) VerifyPaymentSignature(providerOrderID, providerPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(rs.config.KeySecret))
	mac.Write([]byte(providerOrderID + "|" + providerPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return expected == signature
}
