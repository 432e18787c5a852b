package dashboard

import "sync"

// mailbox holds at most one pending value. A put replaces whatever is
// pending, so the consumer only ever sees the most recent value.
type mailbox[T any] struct {
	mu     sync.Mutex
	value  T
	has    bool
	notify chan struct{}
}

func newMailbox[T any]() *mailbox[T] {
	return &mailbox[T]{notify: make(chan struct{}, 1)}
}

// put stores v and reports whether an unconsumed value was replaced.
func (m *mailbox[T]) put(v T) (replaced bool) {
	m.mu.Lock()
	replaced = m.has
	m.value, m.has = v, true
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
	return replaced
}

// take removes and returns the pending value, if any.
func (m *mailbox[T]) take() (v T, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok = m.value, m.has
	var zero T
	m.value, m.has = zero, false
	return v, ok
}

// ready fires after a put. It may fire once more than there are values.
func (m *mailbox[T]) ready() <-chan struct{} {
	return m.notify
}
