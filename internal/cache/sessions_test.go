package cache

import (
	"testing"
	"time"
)

func newTestSessions(made *int) *Sessions[List[rec]] {
	return NewSessions(func() *List[rec] {
		*made++
		return &List[rec]{}
	})
}

func TestSessionsLazyAndDrop(t *testing.T) {
	made := 0
	s := newTestSessions(&made)
	a := s.Get(SessionKey{ID: "one", Owner: "u1"})
	a.Append([]rec{{id: "x"}})
	if s.Get(SessionKey{ID: "one", Owner: "u1"}) != a {
		t.Fatalf("expected the same bundle for the same session")
	}
	s.Get(SessionKey{ID: "two", Owner: "u1"})
	if made != 2 || s.Len() != 2 {
		t.Fatalf("expected two bundles, made %d len %d", made, s.Len())
	}
	s.Drop("one")
	if s.Get(SessionKey{ID: "one", Owner: "u1"}).Len() != 0 {
		t.Fatalf("expected a fresh bundle after drop")
	}
}

func TestSessionsDropOwnerRemovesEveryLogin(t *testing.T) {
	made := 0
	s := newTestSessions(&made)
	s.Get(SessionKey{ID: "a", Owner: "alice"})
	s.Get(SessionKey{ID: "b", Owner: "alice"})
	s.Get(SessionKey{ID: "c", Owner: "bob"})

	if n := s.DropOwner("alice"); n != 2 {
		t.Fatalf("expected two bundles dropped, got %d", n)
	}
	if s.Len() != 1 {
		t.Fatalf("expected only bob's bundle left, got %d", s.Len())
	}
}

func TestSessionsSweepExpired(t *testing.T) {
	made := 0
	s := newTestSessions(&made)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Get(SessionKey{ID: "short", Owner: "u1", ExpiresAt: now.Add(time.Minute)})
	s.Get(SessionKey{ID: "long", Owner: "u1", ExpiresAt: now.Add(time.Hour)})
	s.Get(SessionKey{ID: "forever", Owner: "u1"})

	now = now.Add(2 * time.Minute)
	if n := s.Sweep(); n != 1 {
		t.Fatalf("expected one expired bundle swept, got %d", n)
	}
	if s.Len() != 2 {
		t.Fatalf("expected two bundles left, got %d", s.Len())
	}
}

func TestSessionsGetSweepsLazily(t *testing.T) {
	made := 0
	s := newTestSessions(&made)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Get(SessionKey{ID: "old", Owner: "u1", ExpiresAt: now.Add(30 * time.Second)})

	now = now.Add(sweepEvery)
	s.Get(SessionKey{ID: "new", Owner: "u1", ExpiresAt: now.Add(time.Hour)})
	if s.Len() != 1 {
		t.Fatalf("expected the expired bundle swept on access, got %d bundles", s.Len())
	}
}
