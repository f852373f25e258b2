package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishInvokesAllListeners(t *testing.T) {
	bus := NewBus()

	first, second := 0, 0
	bus.Subscribe(func() { first++ })
	bus.Subscribe(func() { second++ })

	bus.Publish()
	bus.Publish()

	assert.Equal(t, 2, first)
	assert.Equal(t, 2, second)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsubscribe := bus.Subscribe(func() { calls++ })

	bus.Publish()
	unsubscribe()
	bus.Publish()

	assert.Equal(t, 1, calls)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsubscribe := bus.Subscribe(func() { calls++ })

	unsubscribe()
	unsubscribe()
	bus.Publish()

	assert.Equal(t, 0, calls)
}

func TestDuplicateSubscriptionFiresTwice(t *testing.T) {
	bus := NewBus()

	calls := 0
	fn := func() { calls++ }
	bus.Subscribe(fn)
	bus.Subscribe(fn)

	bus.Publish()

	assert.Equal(t, 2, calls)
}

func TestPanickingListenerDoesNotBlockOthers(t *testing.T) {
	bus := NewBus()

	called := false
	bus.Subscribe(func() { panic("listener failure") })
	bus.Subscribe(func() { called = true })

	assert.NotPanics(t, func() { bus.Publish() })
	assert.True(t, called)
}

func TestPublishWithNoListeners(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() { bus.Publish() })
}
