package plugin

import (
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

// ParamStore holds the current parameter snapshot. Load is lock-free and
// safe on the audio goroutine.
type ParamStore struct {
	current atomic.Pointer[eq.Params]

	mu        sync.Mutex
	nextID    int
	listeners map[int]func(eq.Params)
}

// NewParamStore returns a store holding p.
func NewParamStore(p eq.Params) *ParamStore {
	s := &ParamStore{listeners: make(map[int]func(eq.Params))}
	s.current.Store(&p)
	return s
}

// Load returns the current snapshot.
func (s *ParamStore) Load() eq.Params {
	return *s.current.Load()
}

// Store publishes p and notifies every listener on the caller's
// goroutine.
func (s *ParamStore) Store(p eq.Params) {
	s.current.Store(&p)

	s.mu.Lock()
	fns := make([]func(eq.Params), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
}

// Update applies fn to the current snapshot and stores the result.
func (s *ParamStore) Update(fn func(*eq.Params)) eq.Params {
	p := s.Load()
	fn(&p)
	s.Store(p)
	return p
}

// OnChange registers fn to run after every Store. The returned function
// removes the registration.
func (s *ParamStore) OnChange(fn func(eq.Params)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
