package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusDelivered, OrderStatusCompleted, true},

		// No skipping steps
		{OrderStatusPending, OrderStatusProcessing, false},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusDelivered, false},

		// No moving backwards
		{OrderStatusShipped, OrderStatusProcessing, false},
		{OrderStatusDelivered, OrderStatusShipped, false},

		// Cancellation only before fulfilment
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},

		// Terminal states go nowhere
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusDelivered.Terminal())
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusCancelled.Valid())
	assert.False(t, OrderStatus("Unknown").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestCancellationBlocked(t *testing.T) {
	// Paid online orders are locked out of self-service cancellation
	assert.True(t, CancellationBlocked(PaymentStatusPaid, PaymentMethodOnline))

	// COD orders can always be cancelled while the status allows it
	assert.False(t, CancellationBlocked(PaymentStatusPaid, PaymentMethodCOD))
	assert.False(t, CancellationBlocked(PaymentStatusPending, PaymentMethodOnline))
	assert.False(t, CancellationBlocked(PaymentStatusPending, PaymentMethodCOD))
	assert.False(t, CancellationBlocked(PaymentStatusFailed, PaymentMethodOnline))
}

func TestVariantUnitPrice(t *testing.T) {
	assert.Equal(t, 150000.0, ProductVariant{Price: 200000, SalePrice: 150000}.UnitPrice())
	assert.Equal(t, 200000.0, ProductVariant{Price: 200000, SalePrice: 0}.UnitPrice())
	assert.Equal(t, 200000.0, ProductVariant{Price: 200000, SalePrice: 250000}.UnitPrice())
}

func TestDiscountIsFlat(t *testing.T) {
	pct := 10.0
	assert.False(t, Discount{DiscountPercentage: &pct}.IsFlat())
	assert.True(t, Discount{}.IsFlat())
}
