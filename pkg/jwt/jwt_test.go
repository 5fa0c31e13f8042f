package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	service := NewService("test-secret", time.Hour)

	token, err := service.GenerateAccessToken(42, "admin@jagatbilash.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "admin@jagatbilash.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	service := NewService("test-secret", time.Hour)
	other := NewService("other-secret", time.Hour)

	token, err := service.GenerateAccessToken(1, "user@example.com", "user")
	require.NoError(t, err)

	claims, err := other.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	service := NewService("test-secret", -time.Minute)

	token, err := service.GenerateAccessToken(1, "user@example.com", "user")
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	service := NewService("test-secret", time.Hour)

	claims, err := service.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
