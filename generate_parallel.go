package galaxy

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelChunkSize is the number of particles drawn from one stream. It is
// part of the output contract: changing it changes the cloud for a given seed.
const ParallelChunkSize = 4096

// GenerateParallel splits the particles into fixed chunks, chunk k drawing
// from streams.Stream(k). The result depends on the streams only, never on
// workers. workers <= 0 means one per CPU.
func GenerateParallel(ctx context.Context, params GalaxyParameters, streams StreamSource, workers int) (*ParticleBuffer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	buf := newParticleBuffer(params)
	chunks := (params.Count + ParallelChunkSize - 1) / ParallelChunkSize

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k := 0; k < chunks; k++ {
		from := k * ParallelChunkSize
		to := min(from+ParallelChunkSize, params.Count)
		rng := streams.Stream(k)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fillRange(buf, params, rng, from, to)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return buf, nil
}
