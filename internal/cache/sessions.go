package cache

import (
	"sync"
	"time"
)

// sweepEvery bounds how often Get scans for expired bundles.
const sweepEvery = time.Minute

// SessionKey identifies the bundle of one login: its token id, the user that
// owns it and the moment the token stops being valid.
type SessionKey struct {
	ID        string
	Owner     string
	ExpiresAt time.Time
}

type sessionEntry[T any] struct {
	bundle    *T
	owner     string
	expiresAt time.Time
}

// Sessions keeps one bundle of slices per browser session. Bundles are
// created on first use and live until dropped, dropped by owner, or their
// token expires.
type Sessions[T any] struct {
	mu        sync.Mutex
	newFunc   func() *T
	byID      map[string]*sessionEntry[T]
	now       func() time.Time
	lastSweep time.Time
}

// NewSessions builds a registry whose bundles are made by newFunc.
func NewSessions[T any](newFunc func() *T) *Sessions[T] {
	return &Sessions[T]{
		newFunc: newFunc,
		byID:    make(map[string]*sessionEntry[T]),
		now:     time.Now,
	}
}

// Get returns the bundle for key.ID, creating it when missing. Expired
// bundles are swept at most once per sweepEvery.
func (s *Sessions[T]) Get(key SessionKey) *T {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= sweepEvery {
		s.sweepLocked(now)
	}
	e, ok := s.byID[key.ID]
	if !ok {
		e = &sessionEntry[T]{bundle: s.newFunc(), owner: key.Owner, expiresAt: key.ExpiresAt}
		s.byID[key.ID] = e
	}
	return e.bundle
}

// Drop discards the bundle for id.
func (s *Sessions[T]) Drop(id string) {
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
}

// DropOwner discards every bundle owned by owner and reports how many went.
func (s *Sessions[T]) DropOwner(owner string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.byID {
		if e.owner == owner {
			delete(s.byID, id)
			n++
		}
	}
	return n
}

// Sweep discards bundles whose token has expired and reports how many went.
func (s *Sessions[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

func (s *Sessions[T]) sweepLocked(now time.Time) int {
	s.lastSweep = now
	n := 0
	for id, e := range s.byID {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(s.byID, id)
			n++
		}
	}
	return n
}

// Len is the number of live bundles.
func (s *Sessions[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
