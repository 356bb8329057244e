package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	signed, err := GenerateJWT(42, "FACILITY_OWNER", testSecret, 60)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := ValidateJWT(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "FACILITY_OWNER", claims.Role)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	signed, err := GenerateJWT(42, "USER", testSecret, 60)
	require.NoError(t, err)

	_, err = ValidateJWT(signed, "other-secret")
	assert.Error(t, err)
}

func TestValidateJWTExpired(t *testing.T) {
	signed, err := GenerateJWT(42, "USER", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateJWT(signed, testSecret)
	assert.Error(t, err)
}

func TestGenerateJWTEmptySecret(t *testing.T) {
	_, err := GenerateJWT(42, "USER", "", 60)
	assert.Error(t, err)
}
