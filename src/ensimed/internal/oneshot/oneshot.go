// Package oneshot provides a signal that is set exactly once and can be awaited any number of times.
package oneshot

import (
	"context"
	"sync"
)

// Signal is resolved once by its owner and observed by any number of waiters.
type Signal struct {
	mu   sync.Mutex
	set  bool
	done chan struct{}
}

// New creates an unresolved Signal.
func New() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Set resolves the signal. Setting a signal twice is a programming error and panics.
func (s *Signal) Set() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.set {
		panic("oneshot: signal set twice")
	}
	s.set = true
	close(s.done)
}

// IsSet reports whether the signal has been resolved.
func (s *Signal) IsSet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}

// Done returns a channel that is closed once the signal is resolved.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the signal is resolved or the context ends.
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
