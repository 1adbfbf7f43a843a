// Package cache holds the per-session resource slices: the last server answer
// for a resource plus whether a fetch for it is in flight. Slices are not
// evicted one by one; a refresh discards and refetches. Whole session bundles
// go when their token expires or the user logs out.
package cache

import "sync"

// Status is the lifecycle of a slice's most recent action.
type Status string

const (
	Idle    Status = "idle"
	Loading Status = "loading"
)

// Flag tracks an action that stores no data of its own, such as making a squeak.
type Flag struct {
	mu     sync.Mutex
	status Status
}

// Begin marks the action as in flight.
func (f *Flag) Begin() {
	f.mu.Lock()
	f.status = Loading
	f.mu.Unlock()
}

// End returns the flag to idle, whatever the outcome.
func (f *Flag) End() {
	f.mu.Lock()
	f.status = Idle
	f.mu.Unlock()
}

// Status reports the flag's current status.
func (f *Flag) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == "" {
		return Idle
	}
	return f.status
}
