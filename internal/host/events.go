package host

import "sync"

// Listener receives the payload of an emitted event.
type Listener func(payload any)

type subscription struct {
	id uint64
	fn Listener
}

// bus delivers events synchronously, in subscription order, on the
// emitting goroutine.
type bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string][]subscription
}

func newBus() *bus {
	return &bus{subs: make(map[string][]subscription)}
}

func (b *bus) Listen(event string, fn Listener) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[event] = append(b.subs[event], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(event, id) })
	}
}

func (b *bus) remove(event string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[event]
	for i, s := range subs {
		if s.id == id {
			b.subs[event] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[event]) == 0 {
		delete(b.subs, event)
	}
}

func (b *bus) Emit(event string, payload any) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs[event]...)
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(payload)
	}
}
