package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	SetSigningKey("unit-test-key")

	userID := uuid.New()
	token, err := CreateToken(userID, "admin", 3)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, 3, claims.Level)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestValidateTokenWrongKey(t *testing.T) {
	SetSigningKey("first-key")
	token, err := CreateToken(uuid.New(), "user", 1)
	require.NoError(t, err)

	SetSigningKey("second-key")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	SetSigningKey("unit-test-key")
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}