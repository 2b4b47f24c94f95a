package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// UploadClaims bind a pre-signed upload token to one staging key,
// content type, and byte budget. The staging handler rejects any PUT
// whose token does not match what was issued.
type UploadClaims struct {
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateUploadToken(key, contentType string, sizeBytes int64, ttl time.Duration) (string, error)
	ValidateUploadToken(tokenString string) (*UploadClaims, error)
}

type tokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) TokenManager {
	return &tokenManager{secret: []byte(secret)}
}

func (m *tokenManager) GenerateUploadToken(key, contentType string, sizeBytes int64, ttl time.Duration) (string, error) {
	claims := UploadClaims{
		Key:         key,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "vendorhub-uploads",
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateUploadToken(tokenString string) (*UploadClaims, error) {
	claims := &UploadClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Key == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
