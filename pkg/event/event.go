// Package event is a small in-process event bus. Services fire events when
// domain state changes; the server wires listeners at startup (cache
// invalidation, websocket broadcasts).
package event

import (
	"sync"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/logger"
)

// Event names fired by the services.
const (
	OrderCreated   = "order.created"
	OrderUpdated   = "order.updated"
	OrderDeleted   = "order.deleted"
	ProductChanged = "product.changed"
)

// Listener handles a fired event payload.
type Listener func(payload any)

var (
	mu        sync.RWMutex
	listeners = map[string][]Listener{}
	wg        sync.WaitGroup
)

// Listen registers a listener for the named event.
func Listen(name string, l Listener) {
	mu.Lock()
	defer mu.Unlock()
	listeners[name] = append(listeners[name], l)
}

// Fire invokes all listeners for name synchronously, in registration order.
// A panicking listener is recovered and logged so it cannot take down the
// calling request.
func Fire(name string, payload any) {
	mu.RLock()
	ls := listeners[name]
	mu.RUnlock()

	for _, l := range ls {
		invoke(name, l, payload)
	}
}

// FireAsync invokes listeners on their own goroutine. Use Flush in tests to
// wait for completion.
func FireAsync(name string, payload any) {
	mu.RLock()
	ls := listeners[name]
	mu.RUnlock()

	for _, l := range ls {
		wg.Add(1)
		go func(l Listener) {
			defer wg.Done()
			invoke(name, l, payload)
		}(l)
	}
}

// Flush blocks until all async listeners have finished.
func Flush() {
	wg.Wait()
}

// Reset drops all listeners. Test helper.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	listeners = map[string][]Listener{}
}

func invoke(name string, l Listener, payload any) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("event listener panic", "event", name, "panic", rec)
		}
	}()
	l(payload)
}
