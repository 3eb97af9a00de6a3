package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePasswords(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, ComparePasswords(hash, "hunter22"))
	assert.Error(t, ComparePasswords(hash, "hunter23"))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same input")
	require.NoError(t, err)
	second, err := HashPassword("same input")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 64)

	other, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	_, err = GenerateSecureToken(0)
	assert.Error(t, err)
	_, err = GenerateSecureToken(-4)
	assert.Error(t, err)
}