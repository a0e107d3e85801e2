package galaxy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParallel_IndependentOfWorkers(t *testing.T) {
	p := DefaultParameters()
	p.Count = 3*ParallelChunkSize + 17
	streams := SeededStreams{Seed: 11}

	one, err := GenerateParallel(context.Background(), p, streams, 1)
	require.NoError(t, err)
	require.Equal(t, p.Count, one.Len())

	for _, workers := range []int{2, 3, 8, 0} {
		got, err := GenerateParallel(context.Background(), p, streams, workers)
		require.NoError(t, err)
		assert.Equal(t, one.Positions, got.Positions, "workers=%d", workers)
		assert.Equal(t, one.Colors, got.Colors, "workers=%d", workers)
	}
}

func TestGenerateParallel_SingleChunkMatchesStream(t *testing.T) {
	p := DefaultParameters()
	p.Count = 100
	streams := SeededStreams{Seed: 4}

	par, err := GenerateParallel(context.Background(), p, streams, 4)
	require.NoError(t, err)
	seq, err := Generate(p, streams.Stream(0))
	require.NoError(t, err)
	assert.Equal(t, seq.Positions, par.Positions)

	plain, err := Generate(p, NewSeededSource(4))
	require.NoError(t, err)
	assert.Equal(t, plain.Positions, par.Positions)
}

func TestGenerateParallel_Invalid(t *testing.T) {
	p := DefaultParameters()
	p.Count = 0
	buf, err := GenerateParallel(context.Background(), p, SeededStreams{}, 2)
	assert.Nil(t, buf)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGenerateParallel_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := DefaultParameters()
	p.Count = 4 * ParallelChunkSize
	buf, err := GenerateParallel(ctx, p, SeededStreams{Seed: 1}, 2)
	assert.Nil(t, buf)
	assert.ErrorIs(t, err, context.Canceled)
}
