package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vendorhub/internal/security"
)

func TestTokenManager_UploadTokens(t *testing.T) {
	manager := security.NewTokenManager("token-test-secret-0123456789abcdef")

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := manager.GenerateUploadToken("taxdocs/abc/w9.pdf", "application/pdf", 2048, time.Minute)
		assert.NoError(t, err)

		claims, err := manager.ValidateUploadToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "taxdocs/abc/w9.pdf", claims.Key)
		assert.Equal(t, "application/pdf", claims.ContentType)
		assert.Equal(t, int64(2048), claims.SizeBytes)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		token, err := manager.GenerateUploadToken("taxdocs/abc/w9.pdf", "application/pdf", 2048, -time.Minute)
		assert.NoError(t, err)

		_, err = manager.ValidateUploadToken(token)
		assert.ErrorIs(t, err, security.ErrExpiredToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := security.NewTokenManager("a-completely-different-secret-value")
		token, err := other.GenerateUploadToken("taxdocs/abc/w9.pdf", "application/pdf", 2048, time.Minute)
		assert.NoError(t, err)

		_, err = manager.ValidateUploadToken(token)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := manager.ValidateUploadToken("definitely.not.a-jwt")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}
