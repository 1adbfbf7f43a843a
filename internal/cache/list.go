package cache

import "sync"

// List is an ordered, cursor paginated sequence of records in server order.
// Items are never de-duplicated.
type List[T any] struct {
	mu     sync.RWMutex
	status Status
	items  []T
}

// Snapshot is a copy of a slice's state for rendering.
type Snapshot[T any] struct {
	Status Status `json:"status"`
	Data   T      `json:"data"`
}

// Begin marks a fetch as in flight. Data stays visible while loading.
func (l *List[T]) Begin() {
	l.mu.Lock()
	l.status = Loading
	l.mu.Unlock()
}

// Append concatenates a page after the cached items.
func (l *List[T]) Append(page []T) {
	l.mu.Lock()
	l.items = append(l.items, page...)
	l.status = Idle
	l.mu.Unlock()
}

// Replace swaps the cached items for items.
func (l *List[T]) Replace(items []T) {
	l.mu.Lock()
	l.items = append([]T(nil), items...)
	l.status = Idle
	l.mu.Unlock()
}

// Fail ends a fetch that errored. Cached items are kept and no error is
// recorded; the caller reports it.
func (l *List[T]) Fail() {
	l.mu.Lock()
	l.status = Idle
	l.mu.Unlock()
}

// Clear drops every item.
func (l *List[T]) Clear() {
	l.mu.Lock()
	l.items = nil
	l.status = Idle
	l.mu.Unlock()
}

// Last returns a copy of the final item, the cursor for the next page, or nil when empty.
func (l *List[T]) Last() *T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.items) == 0 {
		return nil
	}
	last := l.items[len(l.items)-1]
	return &last
}

// Update applies fn to every item for which match is true and reports how many changed.
func (l *List[T]) Update(match func(T) bool, fn func(*T)) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for i := range l.items {
		if match(l.items[i]) {
			fn(&l.items[i])
			n++
		}
	}
	return n
}

// Remove filters out every item for which match is true and reports how many were removed.
func (l *List[T]) Remove(match func(T) bool) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.items[:0]
	for _, it := range l.items {
		if !match(it) {
			kept = append(kept, it)
		}
	}
	removed := len(l.items) - len(kept)
	var zero T
	for i := len(kept); i < len(l.items); i++ {
		l.items[i] = zero
	}
	l.items = kept
	return removed
}

// Find returns a copy of the first item for which match is true.
func (l *List[T]) Find(match func(T) bool) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, it := range l.items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Items returns a copy of the cached items.
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]T{}, l.items...)
}

// Len is the number of cached items.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Status reports whether a fetch is in flight.
func (l *List[T]) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.status == "" {
		return Idle
	}
	return l.status
}

// Snapshot copies the status and items together.
func (l *List[T]) Snapshot() Snapshot[[]T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	status := l.status
	if status == "" {
		status = Idle
	}
	return Snapshot[[]T]{Status: status, Data: append([]T{}, l.items...)}
}
