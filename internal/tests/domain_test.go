package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fooday/internal/domain"
)

func TestOrderStatus_Next(t *testing.T) {
	tests := []struct {
		from   domain.OrderStatus
		want   domain.OrderStatus
		wantOK bool
	}{
		{domain.StatusPlaced, domain.StatusConfirmed, true},
		{domain.StatusConfirmed, domain.StatusPreparing, true},
		{domain.StatusPreparing, domain.StatusOutForDelivery, true},
		{domain.StatusOutForDelivery, domain.StatusDelivered, true},
		{domain.StatusDelivered, "", false},
		{domain.StatusCancelled, "", false},
	}
	for _, testCase := range tests {
		t.Run(string(testCase.from), func(t *testing.T) {
			next, ok := testCase.from.Next()
			assert.Equal(t, testCase.wantOK, ok)
			if ok {
				assert.Equal(t, testCase.want, next)
			}
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, domain.StatusDelivered.Terminal())
	assert.True(t, domain.StatusCancelled.Terminal())
	assert.False(t, domain.StatusPlaced.Terminal())
	assert.False(t, domain.StatusOutForDelivery.Terminal())
}

func TestParseOrderStatus(t *testing.T) {
	status, err := domain.ParseOrderStatus("out_for_delivery")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusOutForDelivery, status)

	_, err = domain.ParseOrderStatus("teleported")
	assert.Error(t, err)
}

func TestCart_Subtotal(t *testing.T) {
	cart := domain.Cart{
		Items: []domain.CartItem{
			{MenuItem: domain.MenuItem{Price: 12.99}, Quantity: 2},
			{MenuItem: domain.MenuItem{Price: 4.99}, Quantity: 1},
		},
	}
	assert.InDelta(t, 30.97, cart.Subtotal(), 0.001)
	assert.Equal(t, 3, cart.ItemCount())
	assert.False(t, cart.Empty())
	assert.True(t, (&domain.Cart{}).Empty())
}
