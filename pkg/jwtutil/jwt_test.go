package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	tenantID := uint(7)
	token, err := GenerateToken("admin@rms.com", 42, &tenantID, []string{"Admin"}, []string{"MANAGE_ROLES", "MANAGE_USERS"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@rms.com", claims.Email)
	assert.Equal(t, uint(42), claims.UserID)
	require.NotNil(t, claims.TenantID)
	assert.Equal(t, uint(7), *claims.TenantID)
	assert.Equal(t, []string{"Admin"}, claims.Roles)
	assert.Equal(t, []string{"MANAGE_ROLES", "MANAGE_USERS"}, claims.Permissions)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	Initialize(&JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	token, err := GenerateToken("user@rms.com", 1, nil, []string{"Employee"}, nil)
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestValidateTokenWrongKey(t *testing.T) {
	Initialize(&JWTConfig{SigningKey: "key-one", ExpirationHours: 1})
	token, err := GenerateToken("user@rms.com", 1, nil, nil, nil)
	require.NoError(t, err)

	Initialize(&JWTConfig{SigningKey: "key-two", ExpirationHours: 1})
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
