package cache

import "sync"

// Item is a single current record, such as the squeak being viewed.
type Item[T any] struct {
	mu     sync.RWMutex
	status Status
	value  *T
}

func (it *Item[T]) Begin() {
	it.mu.Lock()
	it.status = Loading
	it.mu.Unlock()
}

// Set stores v, or clears the item when v is nil.
func (it *Item[T]) Set(v *T) {
	it.mu.Lock()
	if v == nil {
		it.value = nil
	} else {
		cp := *v
		it.value = &cp
	}
	it.status = Idle
	it.mu.Unlock()
}

func (it *Item[T]) Fail() {
	it.mu.Lock()
	it.status = Idle
	it.mu.Unlock()
}

func (it *Item[T]) Clear() {
	it.Set(nil)
}

// Get returns a copy of the current record, or nil.
func (it *Item[T]) Get() *T {
	it.mu.RLock()
	defer it.mu.RUnlock()
	if it.value == nil {
		return nil
	}
	cp := *it.value
	return &cp
}

// Update applies fn to the current record if there is one and match accepts it.
func (it *Item[T]) Update(match func(T) bool, fn func(*T)) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.value == nil || !match(*it.value) {
		return false
	}
	fn(it.value)
	return true
}

// ClearIf drops the current record when match accepts it.
func (it *Item[T]) ClearIf(match func(T) bool) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.value == nil || !match(*it.value) {
		return false
	}
	it.value = nil
	return true
}

func (it *Item[T]) Status() Status {
	it.mu.RLock()
	defer it.mu.RUnlock()
	if it.status == "" {
		return Idle
	}
	return it.status
}

func (it *Item[T]) Snapshot() Snapshot[*T] {
	it.mu.RLock()
	defer it.mu.RUnlock()
	s := Snapshot[*T]{Status: it.status}
	if s.Status == "" {
		s.Status = Idle
	}
	if it.value != nil {
		cp := *it.value
		s.Data = &cp
	}
	return s
}
