package core

// Subscription is a handle returned by event registration.
type Subscription interface {
	// Unsubscribe stops delivery. Calling it more than once is a no-op.
	Unsubscribe()
}

// SubscriptionFunc adapts a function to the Subscription interface.
type SubscriptionFunc func()

// Unsubscribe calls f.
func (f SubscriptionFunc) Unsubscribe() {
	if f != nil {
		f()
	}
}

// Listeners is an ordered set of callbacks for one event type. It is not
// safe for concurrent use; callers dispatch from a single loop.
type Listeners[T any] struct {
	next  int
	order []int
	fns   map[int]func(T)
}

// Add registers fn and returns a handle that removes it.
func (l *Listeners[T]) Add(fn func(T)) Subscription {
	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	l.order = append(l.order, id)
	return SubscriptionFunc(func() { l.remove(id) })
}

func (l *Listeners[T]) remove(id int) {
	if _, ok := l.fns[id]; !ok {
		return
	}
	delete(l.fns, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i:i], l.order[i+1:]...)
			break
		}
	}
}

// Emit delivers v to every listener in registration order. A listener
// removed during delivery does not receive v.
func (l *Listeners[T]) Emit(v T) {
	ids := append([]int(nil), l.order...)
	for _, id := range ids {
		if fn, ok := l.fns[id]; ok {
			fn(v)
		}
	}
}

// Len returns the number of registered listeners.
func (l *Listeners[T]) Len() int {
	return len(l.fns)
}
