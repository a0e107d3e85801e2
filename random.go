package galaxy

import (
	"math/rand/v2"
	"time"
)

// RandomSource yields uniform floats in [0,1).
type RandomSource interface {
	Float64() float64
}

// StreamSource hands out independent, reproducible random streams. Stream k
// must always yield the same sequence for the same source.
type StreamSource interface {
	Stream(k int) RandomSource
}

// NewSeededSource returns a deterministic PCG source. Two sources built from
// the same seed produce identical sequences. It is the first chunk stream of
// SeededStreams, so a cloud that fits one chunk matches the regenerator's.
func NewSeededSource(seed uint64) RandomSource {
	return SeededStreams{Seed: seed}.Stream(0)
}

// NewTimeSeed derives a seed from the wall clock for the "seed: 0" config.
func NewTimeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// SeededStreams derives one PCG stream per chunk index from a base seed.
type SeededStreams struct {
	Seed uint64
}

func (s SeededStreams) Stream(k int) RandomSource {
	return rand.New(rand.NewPCG(s.Seed, uint64(k)+1))
}
