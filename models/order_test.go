package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderConfirmed, OrderPreparing, true},
		{OrderPreparing, OrderReady, true},
		{OrderReady, OrderServed, true},
		{OrderReady, OrderCompleted, true},
		{OrderServed, OrderCompleted, true},
		{OrderPending, OrderCancelled, true},
		{OrderServed, OrderCancelled, true},
		{OrderPending, OrderCompleted, false},
		{OrderPending, OrderReady, false},
		{OrderCompleted, OrderPending, false},
		{OrderCompleted, OrderCancelled, false},
		{OrderCancelled, OrderPending, false},
		{OrderPending, OrderPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentUnpaid.CanTransitionTo(PaymentPaid))
	assert.True(t, PaymentPaid.CanTransitionTo(PaymentRefunded))
	assert.False(t, PaymentUnpaid.CanTransitionTo(PaymentRefunded))
	assert.False(t, PaymentRefunded.CanTransitionTo(PaymentPaid))
	assert.False(t, PaymentPaid.CanTransitionTo(PaymentUnpaid))
	assert.False(t, PaymentPaid.CanTransitionTo(PaymentPaid))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, OrderStatus("pending").Valid())
	assert.True(t, OrderStatus("cancelled").Valid())
	assert.False(t, OrderStatus("pending_payment").Valid())
	assert.True(t, PaymentStatus("unpaid").Valid())
	assert.False(t, PaymentStatus("success").Valid())
}

func TestFormatOrderNumber(t *testing.T) {
	at := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD-20250314-0042", FormatOrderNumber(42, at))
	assert.Equal(t, "ORD-20250314-2345", FormatOrderNumber(12345, at))
}

func TestLineKey(t *testing.T) {
	large := "L"
	empty := ""
	assert.Equal(t, "7:L", LineKey(7, &large))
	assert.Equal(t, "7:none", LineKey(7, nil))
	assert.Equal(t, "7:none", LineKey(7, &empty))
}
