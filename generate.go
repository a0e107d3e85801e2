package galaxy

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const tau = 2 * math.Pi

// drawsPerParticle is the number of uniform draws one particle consumes:
// radius, then magnitude and sign for each of x, y, z.
const drawsPerParticle = 7

// Generate builds a fresh buffer of params.Count particles laid out on
// params.Branches spiral arms. It consumes rng and nothing else; params is not
// modified. On error no buffer is returned.
func Generate(params GalaxyParameters, rng RandomSource) (*ParticleBuffer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, &GenerationError{Index: 0, Cause: fmt.Errorf("nil random source")}
	}

	buf := newParticleBuffer(params)
	if err := fillRange(buf, params, rng, 0, params.Count); err != nil {
		return nil, err
	}
	return buf, nil
}

// fillRange writes particles [from, to) into buf drawing from rng.
func fillRange(buf *ParticleBuffer, params GalaxyParameters, rng RandomSource, from, to int) error {
	draw := func(i int) (float64, error) {
		u := rng.Float64()
		if !(u >= 0 && u < 1) {
			return 0, &GenerationError{Index: i, Cause: fmt.Errorf("random draw %v outside [0,1)", u)}
		}
		return u, nil
	}
	jitter := func(i int) (float64, error) {
		mag, err := draw(i)
		if err != nil {
			return 0, err
		}
		s, err := draw(i)
		if err != nil {
			return 0, err
		}
		sign := -1.0
		if s < 0.5 {
			sign = 1.0
		}
		return math.Pow(mag, params.RandomnessPower) * sign * params.Randomness, nil
	}

	branches := float64(params.Branches)
	for i := from; i < to; i++ {
		u, err := draw(i)
		if err != nil {
			return err
		}
		radius := u * params.Radius
		spinAngle := radius * params.Spin
		branchAngle := float64(i%params.Branches) / branches * tau

		var j [3]float64
		for axis := 0; axis < 3; axis++ {
			if j[axis], err = jitter(i); err != nil {
				return err
			}
		}

		angle := branchAngle + spinAngle
		x := math.Cos(angle)*radius + j[0]
		y := j[1]
		z := math.Sin(angle)*radius + j[2]
		if !finite(x) || !finite(y) || !finite(z) {
			return &GenerationError{Index: i, Cause: fmt.Errorf("non-finite position (%v, %v, %v)", x, y, z)}
		}

		c := params.InsideColor.Lerp(params.OutsideColor, radius/params.Radius)

		buf.Positions[i] = mgl32.Vec3{float32(x), float32(y), float32(z)}
		buf.Colors[i] = mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
	}
	return nil
}
