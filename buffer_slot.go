package galaxy

import (
	"sync"
	"sync/atomic"
)

// BufferSlot holds the one live buffer of a galaxy. Readers call Current from
// any goroutine; installs are serialized.
type BufferSlot struct {
	installMu sync.Mutex
	current   atomic.Pointer[ParticleBuffer]
	installs  atomic.Uint64
}

func NewBufferSlot() *BufferSlot {
	return &BufferSlot{}
}

// InstallBuffer swaps b in and releases the buffer it replaced. The swap is
// a single pointer store, so Current never sees a partial buffer.
func (s *BufferSlot) InstallBuffer(b *ParticleBuffer) {
	s.installMu.Lock()
	defer s.installMu.Unlock()

	prev := s.current.Swap(b)
	s.installs.Add(1)
	if prev != nil && prev != b {
		prev.Release()
	}
}

func (s *BufferSlot) Current() *ParticleBuffer {
	return s.current.Load()
}

// Installs counts successful swaps since creation.
func (s *BufferSlot) Installs() uint64 {
	return s.installs.Load()
}

// Close releases the live buffer and empties the slot.
func (s *BufferSlot) Close() {
	s.installMu.Lock()
	defer s.installMu.Unlock()

	if prev := s.current.Swap(nil); prev != nil {
		prev.Release()
	}
}
