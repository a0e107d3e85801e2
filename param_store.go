package galaxy

import "sync"

// ParameterStore is the passive holder of the current GalaxyParameters. The
// UI writes through Set/Update and calls Commit when an edit is finished;
// subscribers receive the committed copy.
type ParameterStore struct {
	mu          sync.RWMutex
	params      GalaxyParameters
	version     uint64
	committed   uint64
	subscribers []func(GalaxyParameters)
}

func NewParameterStore(initial GalaxyParameters) *ParameterStore {
	return &ParameterStore{params: initial}
}

func (s *ParameterStore) Params() GalaxyParameters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

func (s *ParameterStore) Set(p GalaxyParameters) {
	s.mu.Lock()
	s.params = p
	s.version++
	s.mu.Unlock()
}

func (s *ParameterStore) Update(fn func(p *GalaxyParameters)) {
	s.mu.Lock()
	fn(&s.params)
	s.version++
	s.mu.Unlock()
}

// Dirty reports whether values changed since the last Commit.
func (s *ParameterStore) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version != s.committed
}

// Subscribe registers fn as an onParametersCommitted hook.
func (s *ParameterStore) Subscribe(fn func(GalaxyParameters)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Commit publishes the current values to every subscriber, in registration
// order, on the caller's goroutine.
func (s *ParameterStore) Commit() GalaxyParameters {
	s.mu.Lock()
	p := s.params
	s.committed = s.version
	subs := append(([]func(GalaxyParameters))(nil), s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(p)
	}
	return p
}
