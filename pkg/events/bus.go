// Package events provides the unauthorized-event bus that decouples the
// HTTP transport (which detects a 401) from the application store (which
// must react by logging out). The bus is constructed by the composition
// root and handed to both sides, keeping the dependency one-directional:
// the store depends on the transport, never the reverse.
package events

import "sync"

// Bus is a minimal publish/subscribe channel for session-invalidation
// events. The zero value is not usable; call NewBus.
type Bus struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[int]func())}
}

// Subscribe registers a listener and returns its unsubscribe function.
// Registering the same function twice fires it twice.
func (b *Bus) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// Publish invokes every registered listener. A panicking listener must not
// prevent the others from running or propagate to the publisher.
func (b *Bus) Publish() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		invoke(fn)
	}
}

func invoke(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
