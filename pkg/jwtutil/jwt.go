package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// JWTConfig holds tenant token configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// TenantClaims represents the signed claims of a tenant token. The tenant ID
// is the only field the backend trusts; the database name rides along for
// diagnostics only.
type TenantClaims struct {
	TenantID uint   `json:"tenant_id"`
	DBName   string `json:"db_name,omitempty"`
	jwt.RegisteredClaims
}

// JWTUtil is a utility for tenant token operations
type JWTUtil struct {
	config *JWTConfig
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(config *JWTConfig) *JWTUtil {
	return &JWTUtil{
		config: config,
	}
}

// GenerateTenantToken creates a signed token naming a tenant
func (j *JWTUtil) GenerateTenantToken(tenantID uint, dbName string) (string, error) {
	if j.config == nil {
		return "", errors.New("JWT configuration not provided")
	}

	claims := TenantClaims{
		TenantID: tenantID,
		DBName:   dbName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(j.config.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// ValidateToken verifies the signature and parses the tenant claims
func (j *JWTUtil) ValidateToken(tokenString string) (*TenantClaims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&TenantClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TenantClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
