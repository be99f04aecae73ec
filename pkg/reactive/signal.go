package reactive

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// idCounter produces process-unique subscriber identifiers.
var idCounter atomic.Uint64

func nextID() uint64 {
	return idCounter.Add(1)
}

// subscriber pairs a notification callback with its identity.
type subscriber struct {
	id uint64
	fn func()
}

// Signal is a reactive value container. Reads return the current value;
// writes notify subscribers when the value actually changed.
type Signal[T any] struct {
	// value is the current signal value.
	value T

	// mu protects the value.
	mu sync.RWMutex

	// subs are the callbacks notified on change.
	subs []subscriber

	// subMu protects the subs slice.
	subMu sync.RWMutex

	// equal is the equality function used to decide if the value changed.
	// If nil, uses default equality checking.
	equal func(T, T) bool
}

// NewSignal creates a new signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Peek returns the current value. Identical to Get; the name signals the
// caller is deliberately reading without any reactive intent.
func (s *Signal[T]) Peek() T {
	return s.Get()
}

// Set updates the signal's value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Update atomically reads and updates the signal's value.
// The function receives the current value and returns the new value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Subscribe registers a callback invoked after each change to the value.
// The returned function removes the subscription.
func (s *Signal[T]) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	sub := subscriber{id: nextID(), fn: fn}

	s.subMu.Lock()
	s.subs = append(s.subs, sub)
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, existing := range s.subs {
			if existing.id == sub.id {
				// Remove by swapping with last element (order doesn't matter)
				s.subs[i] = s.subs[len(s.subs)-1]
				s.subs = s.subs[:len(s.subs)-1]
				return
			}
		}
	}
}

// WithEquals returns the signal configured with a custom equality function.
// Useful for types where reflect.DeepEqual is too expensive or has the
// wrong semantics.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// notify invokes all subscribers. Uses copy-before-notify to avoid holding
// the lock during callbacks. In batch mode the callbacks are queued and run
// once when the outermost batch ends.
func (s *Signal[T]) notify() {
	s.subMu.RLock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	if batchDepth() > 0 {
		for _, sub := range subs {
			queuePending(sub)
		}
		return
	}

	for _, sub := range subs {
		sub.fn()
	}
}

// equals checks value equality using the configured function.
func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals provides type-appropriate equality checking.
// Uses == for common comparable types and reflect.DeepEqual for others.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case uint64:
		return av == any(b).(uint64)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		// Slices, maps, structs and the rest.
		return reflect.DeepEqual(a, b)
	}
}
