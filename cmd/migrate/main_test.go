package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminSeedFromEnv(t *testing.T) {
	t.Run("reads and normalizes the account", func(t *testing.T) {
		t.Setenv("ADMIN_USERNAME", "  Admin ")
		t.Setenv("ADMIN_EMAIL", " admin@example.com ")
		t.Setenv("ADMIN_PASSWORD", "Sup3r-Secret!")

		seed, err := adminSeedFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "admin", seed.Username)
		assert.Equal(t, "admin@example.com", seed.Email)
		assert.Equal(t, "Sup3r-Secret!", seed.Password)
	})

	t.Run("rejects missing variables", func(t *testing.T) {
		t.Setenv("ADMIN_USERNAME", "admin")
		t.Setenv("ADMIN_EMAIL", "admin@example.com")
		t.Setenv("ADMIN_PASSWORD", "")

		_, err := adminSeedFromEnv()
		assert.Error(t, err)
	})
}
