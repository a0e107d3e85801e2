package galaxy

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ParticleBuffer is one generated cloud: parallel position and color
// sequences of equal length. Buffers are immutable once returned by the
// generator; the only state change is Release.
type ParticleBuffer struct {
	ID     uuid.UUID
	Params GalaxyParameters
	Size   float32

	// Generation is the regenerator's sequence number, 0 outside one.
	Generation uint64

	Positions []mgl32.Vec3
	Colors    []mgl32.Vec3

	mu       sync.Mutex
	released bool
	hooks    []func()
}

func newParticleBuffer(params GalaxyParameters) *ParticleBuffer {
	return &ParticleBuffer{
		ID:        uuid.New(),
		Params:    params,
		Size:      float32(params.Size),
		Positions: make([]mgl32.Vec3, params.Count),
		Colors:    make([]mgl32.Vec3, params.Count),
	}
}

func (b *ParticleBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Positions)
}

// OnRelease registers fn to run when the buffer is released. Renderers use it
// to free whatever they derived from the buffer. If the buffer is already
// released fn runs immediately.
func (b *ParticleBuffer) OnRelease(fn func()) {
	b.mu.Lock()
	if b.released {
		b.mu.Unlock()
		fn()
		return
	}
	b.hooks = append(b.hooks, fn)
	b.mu.Unlock()
}

// Release frees the buffer. Only the first call has any effect.
func (b *ParticleBuffer) Release() {
	b.mu.Lock()
	if b.released {
		b.mu.Unlock()
		return
	}
	b.released = true
	hooks := b.hooks
	b.hooks = nil
	b.Positions = nil
	b.Colors = nil
	b.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

func (b *ParticleBuffer) Released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.released
}

// Bounds returns the axis aligned box around all positions.
func (b *ParticleBuffer) Bounds() (min, max mgl32.Vec3) {
	if b.Len() == 0 {
		return
	}
	min, max = b.Positions[0], b.Positions[0]
	for _, p := range b.Positions[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return min, max
}
