package auth

import (
	"testing"
	"time"

	"github.com/erp/stockops/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters",
		AccessTokenExpiration: time.Hour,
		Issuer:                "stockops-test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(GenerateTokenInput{
		UserID:   userID,
		Username: "warehouse.manager",
		Roles:    []string{"stock.cancel_back_to_draft"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "warehouse.manager", claims.Username)
	assert.Equal(t, []string{"stock.cancel_back_to_draft"}, claims.Roles)
	assert.Equal(t, "stockops-test", claims.Issuer)
}

func TestValidateAccessToken_Invalid(t *testing.T) {
	svc := newTestService()

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-entirely-for-testing",
			AccessTokenExpiration: time.Hour,
			Issuer:                "stockops-test",
		})
		token, err := other.GenerateAccessToken(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-at-least-32-characters",
			AccessTokenExpiration: -time.Minute,
			Issuer:                "stockops-test",
		})
		token, err := expired.GenerateAccessToken(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
