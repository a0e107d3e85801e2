package galaxy

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constSource returns the same draw forever.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

type countingSource struct {
	RandomSource
	draws int
}

func (c *countingSource) Float64() float64 {
	c.draws++
	return c.RandomSource.Float64()
}

// failAfter returns NaN once n draws have been made.
type failAfter struct {
	n, draws int
}

func (f *failAfter) Float64() float64 {
	f.draws++
	if f.draws > f.n {
		return math.NaN()
	}
	return 0.25
}

func testParams() GalaxyParameters {
	p := DefaultParameters()
	p.Count = 4
	p.Branches = 2
	p.Radius = 5
	p.Spin = 1
	p.Randomness = 0.2
	p.RandomnessPower = 3
	p.InsideColor = Color{R: 1, G: 0, B: 0}
	p.OutsideColor = Color{R: 0, G: 0, B: 1}
	return p
}

func TestGenerate_ConstantDraws(t *testing.T) {
	buf, err := Generate(testParams(), constSource(0.5))
	require.NoError(t, err)
	require.Equal(t, 4, buf.Len())
	require.Len(t, buf.Colors, 4)

	// radius 2.5, jitter 0.5^3 * -1 * 0.2 on every axis.
	const r, j = 2.5, -0.025
	for i, p := range buf.Positions {
		angle := float64(i%2)*math.Pi + r
		assert.InDelta(t, math.Cos(angle)*r+j, float64(p.X()), 1e-5, "x of %d", i)
		assert.InDelta(t, j, float64(p.Y()), 1e-6, "y of %d", i)
		assert.InDelta(t, math.Sin(angle)*r+j, float64(p.Z()), 1e-5, "z of %d", i)

		c := buf.Colors[i]
		assert.InDelta(t, 0.5, float64(c[0]), 1e-6)
		assert.InDelta(t, 0, float64(c[1]), 1e-6)
		assert.InDelta(t, 0.5, float64(c[2]), 1e-6)
	}
	assert.Equal(t, buf.Positions[0], buf.Positions[2])
	assert.Equal(t, buf.Positions[1], buf.Positions[3])
}

func TestGenerate_FixedDrawScenarios(t *testing.T) {
	white, black := Color{R: 1, G: 1, B: 1}, Color{}
	flat := GalaxyParameters{
		Count: 4, Size: 0.01, Radius: 1, Branches: 2, Spin: 0,
		Randomness: 0, RandomnessPower: 1,
		InsideColor: white, OutsideColor: black,
	}
	almostOne := math.Nextafter(1, 0)

	tests := []struct {
		name       string
		params     GalaxyParameters
		draw       float64
		wantPos    []mgl32.Vec3
		wantColor  mgl32.Vec3
		colorDelta float64
	}{
		{
			name:      "half draws alternate across two arms",
			params:    flat,
			draw:      0.5,
			wantPos:   []mgl32.Vec3{{0.5, 0, 0}, {-0.5, 0, 0}, {0.5, 0, 0}, {-0.5, 0, 0}},
			wantColor: mgl32.Vec3{0.5, 0.5, 0.5},
		},
		{
			name:      "zero draw is the inside color",
			params:    testParams(),
			draw:      0,
			wantColor: mgl32.Vec3{1, 0, 0},
		},
		{
			name:       "draw near one approaches the outside color",
			params:     testParams(),
			draw:       almostOne,
			wantColor:  mgl32.Vec3{0, 0, 1},
			colorDelta: 1e-6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Generate(tt.params, constSource(tt.draw))
			require.NoError(t, err)
			require.Equal(t, tt.params.Count, buf.Len())

			for i, pos := range tt.wantPos {
				for axis := 0; axis < 3; axis++ {
					assert.InDelta(t, pos[axis], buf.Positions[i][axis], 1e-6, "particle %d axis %d", i, axis)
				}
			}
			for i, c := range buf.Colors {
				if tt.colorDelta == 0 {
					assert.Equal(t, tt.wantColor, c, "color of %d", i)
					continue
				}
				for ch := 0; ch < 3; ch++ {
					assert.InDelta(t, tt.wantColor[ch], c[ch], tt.colorDelta, "color of %d", i)
				}
			}
		})
	}
}

func TestGenerate_ZeroRandomnessLiesOnArms(t *testing.T) {
	p := DefaultParameters()
	p.Count = 500
	p.Randomness = 0
	buf, err := Generate(p, NewSeededSource(42))
	require.NoError(t, err)

	for i, pos := range buf.Positions {
		assert.Zero(t, pos.Y())
		radius := math.Hypot(float64(pos.X()), float64(pos.Z()))
		assert.LessOrEqual(t, radius, p.Radius+1e-4)

		want := float64(i%p.Branches)/float64(p.Branches)*tau + radius*p.Spin
		got := math.Atan2(float64(pos.Z()), float64(pos.X()))
		diff := math.Remainder(got-want, tau)
		if radius > 1e-3 {
			assert.InDelta(t, 0, diff, 1e-3, "particle %d off its arm", i)
		}
	}
}

func TestGenerate_ColorsStayBetweenEndpoints(t *testing.T) {
	p := DefaultParameters()
	p.Count = 2000
	buf, err := Generate(p, NewSeededSource(1))
	require.NoError(t, err)

	lo := func(a, b float64) float32 { return float32(math.Min(a, b)) - 1e-6 }
	hi := func(a, b float64) float32 { return float32(math.Max(a, b)) + 1e-6 }
	in, out := p.InsideColor, p.OutsideColor
	for _, c := range buf.Colors {
		assert.True(t, c[0] >= lo(in.R, out.R) && c[0] <= hi(in.R, out.R))
		assert.True(t, c[1] >= lo(in.G, out.G) && c[1] <= hi(in.G, out.G))
		assert.True(t, c[2] >= lo(in.B, out.B) && c[2] <= hi(in.B, out.B))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	p := DefaultParameters()
	a, err := Generate(p, NewSeededSource(99))
	require.NoError(t, err)
	b, err := Generate(p, NewSeededSource(99))
	require.NoError(t, err)
	c, err := Generate(p, NewSeededSource(100))
	require.NoError(t, err)

	assert.Equal(t, a.Positions, b.Positions)
	assert.Equal(t, a.Colors, b.Colors)
	assert.NotEqual(t, a.Positions, c.Positions)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerate_DrawsPerParticle(t *testing.T) {
	p := DefaultParameters()
	p.Count = 37
	src := &countingSource{RandomSource: NewSeededSource(5)}
	_, err := Generate(p, src)
	require.NoError(t, err)
	assert.Equal(t, 37*drawsPerParticle, src.draws)
}

func TestGenerate_DoesNotModifyParams(t *testing.T) {
	p := DefaultParameters()
	before := p
	buf, err := Generate(p, NewSeededSource(3))
	require.NoError(t, err)
	assert.Equal(t, before, p)
	assert.Equal(t, p, buf.Params)
	assert.Equal(t, float32(p.Size), buf.Size)
}

func TestGenerate_InvalidParameters(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(p *GalaxyParameters)
		field string
	}{
		{"zero count", func(p *GalaxyParameters) { p.Count = 0 }, "count"},
		{"negative count", func(p *GalaxyParameters) { p.Count = -1 }, "count"},
		{"zero branches", func(p *GalaxyParameters) { p.Branches = 0 }, "branches"},
		{"zero radius", func(p *GalaxyParameters) { p.Radius = 0 }, "radius"},
		{"nan spin", func(p *GalaxyParameters) { p.Spin = math.NaN() }, "spin"},
		{"negative randomness", func(p *GalaxyParameters) { p.Randomness = -0.1 }, "randomness"},
		{"inf power", func(p *GalaxyParameters) { p.RandomnessPower = math.Inf(1) }, "randomnessPower"},
		{"nan color", func(p *GalaxyParameters) { p.OutsideColor.G = math.NaN() }, "outsideColor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.edit(&p)
			src := &countingSource{RandomSource: NewSeededSource(1)}

			buf, err := Generate(p, src)
			assert.Nil(t, buf)
			require.ErrorIs(t, err, ErrInvalidParameter)
			var ipe *InvalidParameterError
			require.ErrorAs(t, err, &ipe)
			assert.Equal(t, tt.field, ipe.Field)
			assert.Zero(t, src.draws, "no draws before validation")
		})
	}
}

func TestGenerate_BadDrawAborts(t *testing.T) {
	p := DefaultParameters()
	p.Count = 10
	buf, err := Generate(p, &failAfter{n: 3*drawsPerParticle + 2})
	assert.Nil(t, buf)
	require.ErrorIs(t, err, ErrGeneration)

	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, 3, ge.Index)
}

func TestGenerate_NilSource(t *testing.T) {
	_, err := Generate(DefaultParameters(), nil)
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestParticleBuffer_Bounds(t *testing.T) {
	buf := &ParticleBuffer{Positions: []mgl32.Vec3{{1, -2, 3}, {-1, 5, 0}}}
	lo, hi := buf.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -2, 0}, lo)
	assert.Equal(t, mgl32.Vec3{1, 5, 3}, hi)

	var empty *ParticleBuffer
	assert.Zero(t, empty.Len())
}
