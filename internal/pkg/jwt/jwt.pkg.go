package jwt

import (
	"encoding/json"
	"fmt"
	"time"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/logger"
	"topup-store/internal/pkg/validation"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AdminDataKey = "admin_data"
)

func getJWTSecret() []byte {
	secret := helper.GetEnv("JWT_SECRET")
	if secret == "" {
		logger.Warning.Println("JWT_SECRET not found, using default secret")
		secret = "$d3f4uIt_s3cr3t_key#"
	}
	return []byte(secret)
}

func GenerateToken(data types.AdminWithAuth, ttl time.Duration) (string, *time.Time, error) {
	exp := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"exp":        exp.Unix(),
		AdminDataKey: data,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(getJWTSecret())
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, &exp, nil
}

func ValidateToken(jwtToken string) (*types.AdminWithAuth, error) {
	token, err := jwt.Parse(jwtToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims[AdminDataKey] == nil {
		return nil, fmt.Errorf("admin data not found in token claims")
	}

	adminDataBytes, err := json.Marshal(claims[AdminDataKey])
	if err != nil {
		return nil, fmt.Errorf("error marshalling admin data: %w", err)
	}

	var adminData types.AdminWithAuth
	if err := json.Unmarshal(adminDataBytes, &adminData); err != nil {
		return nil, fmt.Errorf("error unmarshalling admin data: %w", err)
	}

	if err := validation.Validate(adminData); err != nil {
		return nil, err
	}

	return &adminData, nil
}
