// Package event is a small in-process event dispatcher.
//
// The order service fires "order.placed" after a successful placement;
// listeners push the order to the admin websocket feed and enqueue the
// confirmation email job. Async dispatch runs listeners on a bounded worker
// pool rather than raw goroutines.
package event

import (
	"sync"

	"github.com/skbags/atelier/pkg/workerpool"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
	pool     = workerpool.New(8)
)

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners on the worker pool and
// returns immediately. If the pool is saturated the listener runs inline so
// no event is lost.
func FireAsync(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h := h
		if err := pool.Submit(func() { h(payload) }); err != nil {
			h(payload)
		}
	}
}

func snapshot(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}
