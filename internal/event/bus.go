// Package event provides the named-event publish/subscribe primitive shared
// by the client model and view.
package event

import "sync"

// Handler consumes the positional arguments of a published event.
type Handler func(args ...any)

// Bus maps event names to ordered subscriber lists. The zero value is ready
// to use, so it can be embedded directly.
//
// Publish runs handlers synchronously, in registration order. The same handler
// may be registered more than once and is then invoked once per registration.
// There is no unsubscribe. A panic inside a handler propagates to the
// publisher; handlers are not isolated from each other.
type Bus struct {
	mu       sync.Mutex
	handlers map[string][]Handler
}

// Subscribe registers h for the named event.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers == nil {
		b.handlers = make(map[string][]Handler)
	}
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish invokes every handler registered for the named event, passing args
// through. It is a no-op when nothing is subscribed.
func (b *Bus) Publish(name string, args ...any) {
	b.mu.Lock()
	hs := b.handlers[name]
	b.mu.Unlock()

	for _, h := range hs {
		h(args...)
	}
}
