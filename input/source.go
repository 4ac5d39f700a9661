package input

import "sync"

// MoveListener receives raw pointer coordinates in pixels
type MoveListener func(x, y float64)

// Source delivers pointer-move signals to subscribed listeners
type Source interface {
	// Subscribe attaches fn and returns a function detaching it
	// The returned function is safe to call more than once
	Subscribe(fn MoveListener) (unsubscribe func())
}

// Broadcaster is a Source fed by the host's event loop through Emit
type Broadcaster struct {
	mu        sync.RWMutex
	listeners map[uint64]MoveListener
	nextID    uint64
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		listeners: make(map[uint64]MoveListener),
	}
}

// Subscribe registers fn for all subsequent Emit calls
func (b *Broadcaster) Subscribe(fn MoveListener) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// Emit forwards a pointer position to every listener
func (b *Broadcaster) Emit(x, y float64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, fn := range b.listeners {
		fn(x, y)
	}
}

// Listeners returns the number of attached listeners
func (b *Broadcaster) Listeners() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
