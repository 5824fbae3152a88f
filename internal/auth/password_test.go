package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Password123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123!", hash)

	assert.True(t, VerifyPassword(hash, "Password123!"))
	assert.False(t, VerifyPassword(hash, "password123!"))
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "Password123!", nil},
		{"too short", "Pa1!", ErrPasswordTooShort},
		{"no uppercase", "password123!", ErrPasswordNoUpper},
		{"no lowercase", "PASSWORD123!", ErrPasswordNoLower},
		{"no number", "Password!!!", ErrPasswordNoNumber},
		{"no special char", "Password123", ErrPasswordNoSpecialChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
