package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/config"
)

func testHasher(t *testing.T) *bcryptHasher {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: 4},
	}
	hasher, ok := NewBcryptHasher(cfg).(*bcryptHasher)
	require.True(t, ok)

	return hasher
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := testHasher(t)

	hash, err := hasher.Hash("Str0ng!Pass")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "Str0ng!Pass", hash)

	assert.True(t, hasher.Check("Str0ng!Pass", hash))
	assert.False(t, hasher.Check("wrong-password", hash))
	assert.False(t, hasher.Check("Str0ng!Pass", "not-a-bcrypt-hash"))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := testHasher(t)

	first, err := hasher.Hash("Str0ng!Pass")
	require.NoError(t, err)
	second, err := hasher.Hash("Str0ng!Pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("Str0ng!Pass", first))
	assert.True(t, hasher.Check("Str0ng!Pass", second))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := testHasher(t)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "Str0ng!Pass", wantErr: false},
		{name: "too short", password: "S0r!t", wantErr: true},
		{name: "too long", password: "Aa1!" + strings.Repeat("x", 200), wantErr: true},
		{name: "missing uppercase", password: "str0ng!pass", wantErr: true},
		{name: "missing lowercase", password: "STR0NG!PASS", wantErr: true},
		{name: "missing number", password: "Strong!Pass", wantErr: true},
		{name: "missing special", password: "Str0ngPass1", wantErr: true},
		{name: "empty password", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBcryptHasher_PolicyFromConfig(t *testing.T) {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: 4},
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:      4,
			RequireNumbers: true,
		},
	}
	hasher := NewBcryptHasher(cfg)

	assert.NoError(t, hasher.ValidatePasswordStrength("1234"))
	assert.Error(t, hasher.ValidatePasswordStrength("abcd"))
}
