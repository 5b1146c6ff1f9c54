// Package events is the in-process notification fan-out used by the
// order placement workflow. Delivery is synchronous and best-effort: a
// failing subscriber is logged and skipped, never propagated to the
// publisher.
package events

import (
	"os"
	"sync"

	"storefront-backend/models"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "events").Logger()

// OrderCreatedFunc receives the freshly committed order.
type OrderCreatedFunc func(order *models.Order)

type Bus struct {
	mu           sync.RWMutex
	orderCreated []OrderCreatedFunc
}

func NewBus() *Bus {
	return &Bus{}
}

// SubscribeOrderCreated registers a handler for order_created.
func (b *Bus) SubscribeOrderCreated(fn OrderCreatedFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orderCreated = append(b.orderCreated, fn)
}

// PublishOrderCreated delivers the order to every subscriber in
// registration order, before returning to the caller. A panicking
// subscriber does not stop delivery to the rest.
func (b *Bus) PublishOrderCreated(order *models.Order) {
	b.mu.RLock()
	subs := make([]OrderCreatedFunc, len(b.orderCreated))
	copy(subs, b.orderCreated)
	b.mu.RUnlock()

	for _, fn := range subs {
		deliver(fn, order)
	}
}

func deliver(fn OrderCreatedFunc, order *models.Order) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Uint("order_id", order.ID).
				Interface("panic", r).
				Msg("order_created subscriber panicked")
		}
	}()
	fn(order)
}
