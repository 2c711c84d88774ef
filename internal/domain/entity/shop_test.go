package entity_test

import (
	"testing"

	"inkwell/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	for _, status := range []entity.OrderStatus{
		entity.OrderStatusPending,
		entity.OrderStatusPaid,
		entity.OrderStatusShipped,
		entity.OrderStatusCancelled,
	} {
		assert.True(t, status.IsValid(), status)
	}

	assert.False(t, entity.OrderStatus("refunded").IsValid())
	assert.False(t, entity.OrderStatus("").IsValid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		from    entity.OrderStatus
		to      entity.OrderStatus
		allowed bool
	}{
		{entity.OrderStatusPending, entity.OrderStatusPaid, true},
		{entity.OrderStatusPending, entity.OrderStatusCancelled, true},
		{entity.OrderStatusPending, entity.OrderStatusShipped, false},
		{entity.OrderStatusPaid, entity.OrderStatusShipped, true},
		{entity.OrderStatusPaid, entity.OrderStatusCancelled, true},
		{entity.OrderStatusPaid, entity.OrderStatusPending, false},
		{entity.OrderStatusShipped, entity.OrderStatusCancelled, false},
		{entity.OrderStatusCancelled, entity.OrderStatusPending, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+" to "+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}
