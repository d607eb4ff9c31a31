package host

// Disposable releases a registration
type Disposable interface {
	Dispose()
}

// DisposableFunc adapts a function to Disposable
type DisposableFunc func()

// Dispose calls the function
func (f DisposableFunc) Dispose() {
	if f != nil {
		f()
	}
}

// CombineDisposables returns a Disposable that releases all of the given
// registrations in reverse order. Disposing twice is a no-op.
func CombineDisposables(disposables ...Disposable) Disposable {
	disposed := false
	return DisposableFunc(func() {
		if disposed {
			return
		}
		disposed = true
		for i := len(disposables) - 1; i >= 0; i-- {
			if disposables[i] != nil {
				disposables[i].Dispose()
			}
		}
	})
}

// EventEmitter delivers values to subscribed listeners synchronously,
// in subscription order
type EventEmitter[T any] struct {
	listeners []*listener[T]
}

type listener[T any] struct {
	fn func(T)
}

// Event subscribes a listener; dispose the result to unsubscribe
func (e *EventEmitter[T]) Event(fn func(T)) Disposable {
	l := &listener[T]{fn: fn}
	e.listeners = append(e.listeners, l)
	return DisposableFunc(func() {
		for idx, existing := range e.listeners {
			if existing == l {
				e.listeners = append(e.listeners[:idx:idx], e.listeners[idx+1:]...)
				return
			}
		}
	})
}

// Fire calls every listener with v
func (e *EventEmitter[T]) Fire(v T) {
	// Copy so listeners may unsubscribe while being called
	current := make([]*listener[T], len(e.listeners))
	copy(current, e.listeners)
	for _, l := range current {
		l.fn(v)
	}
}

// ListenerCount returns the number of subscribed listeners
func (e *EventEmitter[T]) ListenerCount() int {
	return len(e.listeners)
}

// Dispose removes all listeners
func (e *EventEmitter[T]) Dispose() {
	e.listeners = nil
}
