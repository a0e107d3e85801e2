package galaxy

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	maxPitch   = math.Pi/2 - 0.01
	zoomFactor = 0.95
)

// OrbitCamera circles Target at Distance. Yaw is the azimuth around +Y
// measured from +Z, Pitch the elevation above the XZ plane, both radians.
// Input accumulates angular velocity which Update applies and damps.
type OrbitCamera struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32

	FOV    float32 // degrees
	Near   float32
	Far    float32
	Aspect float32

	// Damping is the fraction of the pending motion applied per frame.
	// Zero disables damping and applies input at once.
	Damping     float32
	RotateSpeed float32
	MinDistance float32
	MaxDistance float32

	yawVel   float32
	pitchVel float32
	scale    float32

	home struct {
		distance, yaw, pitch float32
	}
}

func NewOrbitCamera(eye, target mgl32.Vec3, fov, near, far, damping float32) *OrbitCamera {
	c := &OrbitCamera{
		Target:      target,
		FOV:         fov,
		Near:        near,
		Far:         far,
		Aspect:      1,
		Damping:     damping,
		RotateSpeed: 1,
		MinDistance: near * 2,
		MaxDistance: far / 2,
		scale:       1,
	}
	d := eye.Sub(target)
	c.Distance = d.Len()
	if c.Distance > 0 {
		c.Yaw = float32(math.Atan2(float64(d.X()), float64(d.Z())))
		c.Pitch = float32(math.Asin(float64(d.Y() / c.Distance)))
	}
	c.Pitch = clampf(c.Pitch, -maxPitch, maxPitch)
	c.home.distance, c.home.yaw, c.home.pitch = c.Distance, c.Yaw, c.Pitch
	return c
}

func NewOrbitCameraFromConfig(cfg CameraConfig) *OrbitCamera {
	return NewOrbitCamera(cfg.Eye(), mgl32.Vec3{}, cfg.FOV, cfg.Near, cfg.Far, cfg.Damping)
}

// Rotate turns a drag of (dx, dy) pixels in a viewport of the given height
// into angular motion. A drag across the full height is one turn.
func (c *OrbitCamera) Rotate(dx, dy float64, viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	k := float32(2*math.Pi/float64(viewportHeight)) * c.RotateSpeed
	c.yawVel -= float32(dx) * k
	c.pitchVel += float32(dy) * k
}

// Zoom moves the camera towards the target for steps > 0, away for steps < 0.
func (c *OrbitCamera) Zoom(steps float64) {
	c.scale *= float32(math.Pow(zoomFactor, steps))
}

func (c *OrbitCamera) Reset() {
	c.Distance, c.Yaw, c.Pitch = c.home.distance, c.home.yaw, c.home.pitch
	c.yawVel, c.pitchVel, c.scale = 0, 0, 1
}

// Update applies pending motion. Called once per frame.
func (c *OrbitCamera) Update() {
	f := c.Damping
	if f <= 0 {
		f = 1
	}
	c.Yaw += c.yawVel * f
	c.Pitch = clampf(c.Pitch+c.pitchVel*f, -maxPitch, maxPitch)
	c.Distance = clampf(c.Distance*c.scale, c.MinDistance, c.MaxDistance)
	c.scale = 1

	if c.Damping > 0 {
		c.yawVel *= 1 - c.Damping
		c.pitchVel *= 1 - c.Damping
	} else {
		c.yawVel, c.pitchVel = 0, 0
	}
}

// Moving reports whether damped motion is still pending.
func (c *OrbitCamera) Moving() bool {
	const eps = 1e-5
	return abs32(c.yawVel) > eps || abs32(c.pitchVel) > eps
}

func (c *OrbitCamera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

func (c *OrbitCamera) Eye() mgl32.Vec3 {
	sy, cy := math.Sincos(float64(c.Yaw))
	sp, cp := math.Sincos(float64(c.Pitch))
	dir := mgl32.Vec3{float32(cp * sy), float32(sp), float32(cp * cy)}
	return c.Target.Add(dir.Mul(c.Distance))
}

func (c *OrbitCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

func (c *OrbitCamera) Projection() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

func (c *OrbitCamera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Project maps p to pixel coordinates of a width x height viewport, origin
// top left. depth is the view space distance. ok is false for points behind
// the camera or outside the frustum.
func (c *OrbitCamera) Project(vp mgl32.Mat4, p mgl32.Vec3, width, height int) (x, y, depth float32, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	nx, ny, nz := clip.X()/w, clip.Y()/w, clip.Z()/w
	if nx < -1 || nx > 1 || ny < -1 || ny > 1 || nz < -1 || nz > 1 {
		return 0, 0, 0, false
	}
	x = (nx + 1) / 2 * float32(width)
	y = (1 - ny) / 2 * float32(height)
	return x, y, w, true
}

type OrbitCameraModule struct {
	Config CameraConfig
}

func (m OrbitCameraModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewOrbitCameraFromConfig(m.Config))
	app.UseSystem(
		System(orbitCameraInputSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(orbitCameraUpdateSystem).
			InStage(PostUpdate),
	)
}

func orbitCameraInputSystem(input *Input, cam *OrbitCamera, window *WindowState) {
	if input.Pressed[MouseButtonLeft] && !input.JustPressed[MouseButtonLeft] {
		cam.Rotate(input.MouseDeltaX, input.MouseDeltaY, window.WindowHeight)
	}
	if input.ScrollY != 0 {
		cam.Zoom(input.ScrollY)
	}
	if input.JustPressed[KeyEqual] || input.JustPressed[KeyKPPlus] {
		cam.Zoom(1)
	}
	if input.JustPressed[KeyMinus] || input.JustPressed[KeyKPMinus] {
		cam.Zoom(-1)
	}
	if input.JustPressed[KeyR] {
		cam.Reset()
	}
}

func orbitCameraUpdateSystem(cam *OrbitCamera, window *WindowState) {
	cam.SetViewport(window.WindowWidth, window.WindowHeight)
	cam.Update()
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
