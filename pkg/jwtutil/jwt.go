package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/alecruz/nacho-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims carried by every authenticated request.
// ClienteID scopes all resource access to the caller's tenant.
type Claims struct {
	UserID    uint   `json:"id"`
	ClienteID uint   `json:"cliente_id"`
	Rol       string `json:"rol"`
	Usuario   string `json:"usuario"`
	jwt.RegisteredClaims
}

// JWTUtil signs and verifies bearer tokens
type JWTUtil struct {
	config *config.JWTConfig
}

// New creates a JWT utility with the given configuration
func New(config *config.JWTConfig) *JWTUtil {
	return &JWTUtil{config: config}
}

// GenerateToken creates a signed token for the given account
func (j *JWTUtil) GenerateToken(userID, clienteID uint, rol, usuario string) (string, error) {
	if j.config == nil {
		return "", errors.New("JWT configuration not provided")
	}

	claims := Claims{
		UserID:    userID,
		ClienteID: clienteID,
		Rol:       rol,
		Usuario:   usuario,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(j.config.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// ValidateToken validates and parses the JWT token
func (j *JWTUtil) ValidateToken(tokenString string) (*Claims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
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

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
