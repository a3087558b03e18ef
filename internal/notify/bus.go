// Package notify carries per-collection change notifications from the cache
// layer to whatever renders the catalog.
package notify

import "sync"

// Kind describes what happened to a collection.
type Kind string

const (
	// KindInvalidated means the cached collection was cleared; the next
	// read will repopulate it.
	KindInvalidated Kind = "invalidated"

	// KindPatched means a single record was patched into the cached
	// collection without a full re-fetch.
	KindPatched Kind = "patched"

	// KindRefreshed means a fetch replaced the cached collection contents.
	KindRefreshed Kind = "refreshed"
)

// Event is delivered synchronously to every subscriber of its collection,
// after the cache update it describes has completed.
type Event struct {
	Collection string
	Kind       Kind

	// RecordID is set for KindPatched events.
	RecordID string
}

// Listener receives change events for a collection.
type Listener func(Event)

// Bus is a process-wide publish/subscribe list of listeners per collection.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]map[int]Listener
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]Listener)}
}

// Subscribe registers a listener for one collection and returns its
// unsubscribe function.
func (b *Bus) Subscribe(collection string, fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	if b.subs[collection] == nil {
		b.subs[collection] = make(map[int]Listener)
	}
	b.subs[collection][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[collection], id)
	}
}

// Publish delivers the event synchronously to each listener subscribed to
// its collection. Listeners run on the caller's goroutine; order between
// listeners is unspecified.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	listeners := make([]Listener, 0, len(b.subs[e.Collection]))
	for _, fn := range b.subs[e.Collection] {
		listeners = append(listeners, fn)
	}
	b.mu.RUnlock()

	for _, fn := range listeners {
		fn(e)
	}
}
