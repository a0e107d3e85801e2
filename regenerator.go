package galaxy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

type RegenState int32

const (
	StateIdle RegenState = iota
	StateRegenerating
)

func (s RegenState) String() string {
	if s == StateRegenerating {
		return "regenerating"
	}
	return "idle"
}

type RegeneratorOptions struct {
	// Seed feeds every generation. With Reseed unset the same parameters
	// always give the same cloud.
	Seed   uint64
	Reseed bool
	// Workers bounds the chunk goroutines of one generation; 0 means one
	// per CPU. The cloud for a seed does not depend on it.
	Workers int
}

type RegenStats struct {
	Generated uint64
	Failed    uint64
	Dropped   uint64
}

// Regenerator runs the commit -> generate -> install -> release protocol
// against one BufferSlot. Generations never overlap.
type Regenerator struct {
	opts   RegeneratorOptions
	slot   *BufferSlot
	logger Logger

	genMu      sync.Mutex
	state      atomic.Int32
	generation atomic.Uint64

	generated atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64

	errMu   sync.Mutex
	lastErr error
	onError func(error)

	pending chan GalaxyParameters
	ready   atomic.Pointer[ParticleBuffer]
	readyCh chan struct{}
}

func NewRegenerator(slot *BufferSlot, logger Logger, opts RegeneratorOptions) *Regenerator {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Regenerator{
		opts:    opts,
		slot:    slot,
		logger:  logger,
		pending: make(chan GalaxyParameters, 1),
		readyCh: make(chan struct{}, 1),
	}
}

func (r *Regenerator) Slot() *BufferSlot { return r.slot }

func (r *Regenerator) State() RegenState { return RegenState(r.state.Load()) }

// OnError sets a hook for failures of asynchronous generations, which have
// no caller to return to. Call before Run.
func (r *Regenerator) OnError(fn func(error)) { r.onError = fn }

func (r *Regenerator) LastError() error {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	return r.lastErr
}

func (r *Regenerator) Stats() RegenStats {
	return RegenStats{
		Generated: r.generated.Load(),
		Failed:    r.failed.Load(),
		Dropped:   r.dropped.Load(),
	}
}

// Regenerate runs one synchronous generation and installs the result. On
// error nothing is installed and the previous buffer stays live.
func (r *Regenerator) Regenerate(params GalaxyParameters) (*ParticleBuffer, error) {
	r.genMu.Lock()
	defer r.genMu.Unlock()

	buf, err := r.generate(context.Background(), params)
	if err != nil {
		return nil, err
	}
	r.slot.InstallBuffer(buf)
	return buf, nil
}

// Submit queues params for the worker started by Run. Only the newest
// pending commit is kept; an older one still waiting is dropped.
func (r *Regenerator) Submit(params GalaxyParameters) {
	for {
		select {
		case r.pending <- params:
			return
		default:
		}
		select {
		case <-r.pending:
			r.dropped.Add(1)
			r.logger.Debugf("regenerator: superseded pending commit dropped")
		default:
		}
	}
}

// Run is the asynchronous worker. Finished buffers wait in a one-slot ready
// box until InstallReady is called from the render loop.
func (r *Regenerator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case params := <-r.pending:
			r.genMu.Lock()
			buf, err := r.generate(ctx, params)
			r.genMu.Unlock()
			if ctx.Err() != nil {
				if buf != nil {
					buf.Release()
				}
				return ctx.Err()
			}
			if err != nil {
				if r.onError != nil {
					r.onError(err)
				}
				continue
			}
			if old := r.ready.Swap(buf); old != nil {
				old.Release()
				r.dropped.Add(1)
			}
			select {
			case r.readyCh <- struct{}{}:
			default:
			}
		}
	}
}

// Ready is signalled whenever a buffer becomes available for InstallReady.
func (r *Regenerator) Ready() <-chan struct{} { return r.readyCh }

// InstallReady installs the buffer the worker finished last, if any.
func (r *Regenerator) InstallReady() bool {
	buf := r.ready.Swap(nil)
	if buf == nil {
		return false
	}
	r.slot.InstallBuffer(buf)
	return true
}

// Close releases a finished buffer that was never installed, then the live
// one. Stop the worker first.
func (r *Regenerator) Close() {
	if buf := r.ready.Swap(nil); buf != nil {
		buf.Release()
	}
	r.slot.Close()
}

// generate runs one generation. Callers hold genMu.
func (r *Regenerator) generate(ctx context.Context, params GalaxyParameters) (*ParticleBuffer, error) {
	r.state.Store(int32(StateRegenerating))
	defer r.state.Store(int32(StateIdle))

	id := r.generation.Add(1)
	start := time.Now()

	seed := r.opts.Seed
	if r.opts.Reseed {
		seed += id - 1
	}
	buf, err := GenerateParallel(ctx, params, SeededStreams{Seed: seed}, r.opts.Workers)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.logger.Debugf("generation %d cancelled", id)
		return nil, err
	}
	if err != nil {
		r.failed.Add(1)
		r.setErr(err)
		if errors.Is(err, ErrInvalidParameter) {
			r.logger.Warnf("generation %d rejected: %v", id, err)
		} else {
			r.logger.Errorf("generation %d failed: %v", id, err)
		}
		return nil, err
	}

	buf.Generation = id
	r.generated.Add(1)
	r.setErr(nil)
	r.logger.Infof("generation %d: %d particles, %d arms in %s", id, buf.Len(), params.Branches, time.Since(start).Round(time.Microsecond))
	r.logger.Debugf("generation %d: buffer %s", id, buf.ID)
	return buf, nil
}

// Summary is a one line status for overlays.
func (r *Regenerator) Summary() string {
	s := r.Stats()
	return fmt.Sprintf("%d particles  %s  gen %d  failed %d  dropped %d",
		r.slot.Current().Len(), r.State(), s.Generated, s.Failed, s.Dropped)
}

func (r *Regenerator) setErr(err error) {
	r.errMu.Lock()
	r.lastErr = err
	r.errMu.Unlock()
}
