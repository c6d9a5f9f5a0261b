package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

// TokenTypeDeliveryPartner marks tokens issued to courier logins so they can
// never pass customer auth and vice versa.
const TokenTypeDeliveryPartner = "delivery_partner"

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Development fallback only; production sets JWT_SECRET
		secret = "FoodDeliverySecretAUTH2024"
	}
	JWTSecret = []byte(secret)
}

type CustomClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// PartnerClaims is the delivery-partner token payload: {id, phone, type}.
type PartnerClaims struct {
	PartnerID uint   `json:"id"`
	Phone     string `json:"phone"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

func GenerateToken(userID uint, role string) (string, error) {
	claims := &CustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "FoodDeliveryApp",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

func GeneratePartnerToken(partnerID uint, phone string) (string, error) {
	claims := &PartnerClaims{
		PartnerID: partnerID,
		Phone:     phone,
		Type:      TokenTypeDeliveryPartner,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "FoodDeliveryApp",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func ParsePartnerToken(tokenString string) (*PartnerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PartnerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*PartnerClaims)
	if !ok || claims.Type != TokenTypeDeliveryPartner {
		return nil, errors.New("not a delivery partner token")
	}

	return claims, nil
}
