package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("pending may complete or cancel", func(t *testing.T) {
		assert.True(t, CanTransition(OrderPending, OrderCompleted))
		assert.True(t, CanTransition(OrderPending, OrderCancelled))
	})

	t.Run("completed and cancelled are terminal", func(t *testing.T) {
		for _, from := range []string{OrderCompleted, OrderCancelled} {
			for _, to := range []string{OrderPending, OrderCompleted, OrderCancelled} {
				assert.False(t, CanTransition(from, to), "%s -> %s must be rejected", from, to)
			}
		}
	})

	t.Run("no status transitions to itself", func(t *testing.T) {
		for from := range OrderTransitions {
			assert.False(t, CanTransition(from, from))
		}
	})

	t.Run("pending cannot be re-entered", func(t *testing.T) {
		assert.False(t, CanTransition(OrderPending, OrderPending))
	})

	t.Run("unknown statuses never transition", func(t *testing.T) {
		assert.False(t, CanTransition("refunded", OrderPending))
		assert.False(t, CanTransition(OrderPending, "refunded"))
	})
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderPending))
	assert.True(t, ValidOrderStatus(OrderCompleted))
	assert.True(t, ValidOrderStatus(OrderCancelled))
	assert.False(t, ValidOrderStatus("PENDING"))
	assert.False(t, ValidOrderStatus(""))
}
