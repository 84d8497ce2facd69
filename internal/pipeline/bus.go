package pipeline

import "sync"

// Handler observes an Event. A returned error aborts the pass.
type Handler func(Event) error

// Bus is a synchronous pub/sub bus. Handlers run on the publishing goroutine
// in subscription order.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
}

func NewBus() *Bus { return &Bus{subscribers: map[string][]Handler{}} }

// Subscribe registers h for the named event.
func (b *Bus) Subscribe(event string, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	b.subscribers[event] = append(b.subscribers[event], h)
	b.mu.Unlock()
}

// Publish delivers e to its handlers and stops at the first error.
func (b *Bus) Publish(e Event) error {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	hs := append([]Handler(nil), b.subscribers[e.Name()]...)
	b.mu.RUnlock()
	for _, h := range hs {
		if err := h(e); err != nil {
			return err
		}
	}
	return nil
}
