package galaxy

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestOrbitCamera_FromEye(t *testing.T) {
	cam := NewOrbitCamera(mgl32.Vec3{3, 3, 3}, mgl32.Vec3{}, 75, 0.1, 100, 0)
	assert.InDelta(t, math.Sqrt(27), float64(cam.Distance), 1e-5)
	assert.InDelta(t, math.Pi/4, float64(cam.Yaw), 1e-6)

	eye := cam.Eye()
	assert.InDelta(t, 3, float64(eye.X()), 1e-4)
	assert.InDelta(t, 3, float64(eye.Y()), 1e-4)
	assert.InDelta(t, 3, float64(eye.Z()), 1e-4)
}

func TestOrbitCamera_DampedRotation(t *testing.T) {
	cam := NewOrbitCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 75, 0.1, 100, 0.5)
	cam.Rotate(-100, 0, 400)
	want := float32(2 * math.Pi * 100 / 400)

	cam.Update()
	assert.InDelta(t, want/2, cam.Yaw, 1e-5)
	assert.True(t, cam.Moving())
	cam.Update()
	assert.InDelta(t, want*3/4, cam.Yaw, 1e-5)
	for i := 0; i < 60; i++ {
		cam.Update()
	}
	assert.InDelta(t, want, cam.Yaw, 1e-4)
	assert.False(t, cam.Moving())
}

func TestOrbitCamera_UndampedAppliesAtOnce(t *testing.T) {
	cam := NewOrbitCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 75, 0.1, 100, 0)
	cam.Rotate(0, 50, 100)
	cam.Update()
	assert.InDelta(t, maxPitch, cam.Pitch, 1e-6, "pitch is clamped below the pole")
	assert.False(t, cam.Moving())

	cam.Rotate(0, 1, 0)
	assert.False(t, cam.Moving(), "zero viewport ignored")
}

func TestOrbitCamera_ZoomClampAndReset(t *testing.T) {
	cam := NewOrbitCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 75, 0.1, 100, 0)
	cam.Zoom(1)
	cam.Update()
	assert.InDelta(t, 4.75, cam.Distance, 1e-5)

	cam.Zoom(1000)
	cam.Update()
	assert.Equal(t, cam.MinDistance, cam.Distance)

	cam.Zoom(-1000)
	cam.Update()
	assert.Equal(t, cam.MaxDistance, cam.Distance)

	cam.Rotate(30, 30, 100)
	cam.Update()
	cam.Reset()
	assert.InDelta(t, 5, cam.Distance, 1e-6)
	assert.Zero(t, cam.Yaw)
	assert.Zero(t, cam.Pitch)
}

func TestOrbitCamera_Project(t *testing.T) {
	cam := NewOrbitCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 90, 0.1, 100, 0)
	cam.SetViewport(200, 100)
	vp := cam.ViewProjection()

	x, y, depth, ok := cam.Project(vp, mgl32.Vec3{}, 200, 100)
	assert.True(t, ok)
	assert.InDelta(t, 100, x, 1e-3)
	assert.InDelta(t, 50, y, 1e-3)
	assert.InDelta(t, 5, depth, 1e-4)

	_, up, _, ok := cam.Project(vp, mgl32.Vec3{0, 1, 0}, 200, 100)
	assert.True(t, ok)
	assert.Less(t, up, float32(50), "+Y is up on screen")

	_, _, _, ok = cam.Project(vp, mgl32.Vec3{0, 0, 10}, 200, 100)
	assert.False(t, ok, "behind the camera")
	_, _, _, ok = cam.Project(vp, mgl32.Vec3{100, 0, 0}, 200, 100)
	assert.False(t, ok, "outside the frustum")
}

func TestPixelRatio(t *testing.T) {
	assert.Equal(t, 1.0, pixelRatio(800, 800))
	assert.Equal(t, 1.5, pixelRatio(1200, 800))
	assert.Equal(t, MaxPixelRatio, pixelRatio(2400, 800))
	assert.Equal(t, 1.0, pixelRatio(0, 800))
	assert.Equal(t, 1.0, pixelRatio(800, 0))
}
