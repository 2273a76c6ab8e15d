package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// manageTokenTTL bounds how long a deploy response's manage token stays
// usable for re-deploys and unpublishing.
const manageTokenTTL = 90 * 24 * time.Hour

// ManageClaims represents JWT claims binding a manage token to a
// portfolio username.
type ManageClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ManageTokenService issues and validates portfolio manage tokens. A token
// is issued on first deploy of a username and must accompany any later
// deploy or unpublish of that username.
type ManageTokenService struct {
	secret []byte
}

// NewManageTokenService creates a manage token service signing with the
// given secret.
func NewManageTokenService(secret string) *ManageTokenService {
	return &ManageTokenService{secret: []byte(secret)}
}

// GenerateToken generates a manage token for the given username.
func (s *ManageTokenService) GenerateToken(username string) (string, error) {
	now := time.Now()

	claims := &ManageClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(manageTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a manage token and checks that it was issued for
// the given username.
func (s *ManageTokenService) ValidateToken(tokenString, username string) error {
	if tokenString == "" {
		return &ErrInvalidManageToken{}
	}

	claims := &ManageClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return &ErrInvalidManageToken{}
	}

	if claims.Username != username {
		return &ErrInvalidManageToken{}
	}
	return nil
}
