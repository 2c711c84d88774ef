package entity_test

import (
	"testing"
	"time"

	"inkwell/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestRefreshToken_IsActive(t *testing.T) {
	now := time.Now()
	revokedAt := now.Add(-time.Minute)

	testCases := []struct {
		name   string
		token  entity.RefreshToken
		active bool
	}{
		{
			name:   "live token",
			token:  entity.RefreshToken{ExpiresAt: now.Add(time.Hour)},
			active: true,
		},
		{
			name:   "revoked token",
			token:  entity.RefreshToken{ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt},
			active: false,
		},
		{
			name:   "expired token",
			token:  entity.RefreshToken{ExpiresAt: now.Add(-time.Hour)},
			active: false,
		},
		{
			name: "dead exactly at expiry",
			token: entity.RefreshToken{
				ExpiresAt: now,
			},
			active: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.active, tc.token.IsActive(now))
		})
	}
}
