package event

import "sync"

// Subscriber is the subscribe-only view of a Source handed to consumers
type Subscriber[T any] interface {
	// Subscribe registers fn and returns its unsubscribe function
	Subscribe(fn func(T)) (unsubscribe func())
}

type listener[T any] struct {
	id uint64
	fn func(T)
}

// Source is a notification source with cancellable listeners
// Listeners run synchronously on the emitting goroutine, in subscription order
type Source[T any] struct {
	mu        sync.RWMutex
	listeners []listener[T]
	nextID    uint64
}

// NewSource creates an empty source
func NewSource[T any]() *Source[T] {
	return &Source[T]{}
}

// Subscribe registers fn, the returned function removes it and is safe to call more than once
func (s *Source[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Source[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Emit delivers v to a snapshot of current listeners
// A listener may unsubscribe during delivery without deadlock
func (s *Source[T]) Emit(v T) {
	s.mu.RLock()
	snapshot := make([]func(T), len(s.listeners))
	for i, l := range s.listeners {
		snapshot[i] = l.fn
	}
	s.mu.RUnlock()

	for _, fn := range snapshot {
		fn(v)
	}
}

// ListenerCount returns the number of registered listeners
func (s *Source[T]) ListenerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners)
}
