package events

import (
	"testing"

	"storefront-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversInRegistrationOrder(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.SubscribeOrderCreated(func(order *models.Order) {
		got = append(got, "first")
	})
	bus.SubscribeOrderCreated(func(order *models.Order) {
		got = append(got, "second")
	})

	bus.PublishOrderCreated(&models.Order{ID: 1})

	require.Equal(t, []string{"first", "second"}, got)
}

func TestPublishPassesTheOrder(t *testing.T) {
	bus := NewBus()

	var received *models.Order
	bus.SubscribeOrderCreated(func(order *models.Order) {
		received = order
	})

	order := &models.Order{ID: 42, PaymentStatus: models.PaymentStatusPending}
	bus.PublishOrderCreated(order)

	require.NotNil(t, received)
	assert.Same(t, order, received)
}

func TestPanickingSubscriberDoesNotStopDelivery(t *testing.T) {
	bus := NewBus()

	delivered := false
	bus.SubscribeOrderCreated(func(order *models.Order) {
		panic("boom")
	})
	bus.SubscribeOrderCreated(func(order *models.Order) {
		delivered = true
	})

	assert.NotPanics(t, func() {
		bus.PublishOrderCreated(&models.Order{ID: 7})
	})
	assert.True(t, delivered, "subscriber after the panicking one should still run")
}

func TestPublishWithNoSubscribers(t *testing.T) {
	bus := NewBus()

	assert.NotPanics(t, func() {
		bus.PublishOrderCreated(&models.Order{ID: 3})
	})
}
