package shaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsWGSL(t *testing.T) {
	assert.Contains(t, PointsWGSL, "fn vs_main(")
	assert.Contains(t, PointsWGSL, "fn fs_main(")
	// Fragments outside the unit disc of the quad are dropped.
	assert.Contains(t, PointsWGSL, "@location(1) corner: vec2<f32>")
	assert.Contains(t, PointsWGSL, "discard;")
	assert.Contains(t, PointsWGSL, "smoothstep(")
}
