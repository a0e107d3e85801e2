package app

import (
	"fmt"
	"time"

	"github.com/gekko3d/galaxy/pointsrt/rt/core"
	"github.com/gekko3d/galaxy/pointsrt/rt/gpu"
	"github.com/gekko3d/galaxy/pointsrt/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Logger is the subset of the engine logger the renderer writes to.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

const overlayFontSize = 32

// App draws one point cloud as additive billboards plus a text overlay
// into a GLFW window surface.
type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	PointsPipeline *wgpu.RenderPipeline
	BufferManager  *gpu.PointBufferManager

	Camera     core.CameraUniform
	PointSize  float32
	PixelRatio float32
	ClearColor wgpu.Color
	DebugMode  bool

	Profiler *Profiler
	Log      Logger

	FPS   float64
	clock frameClock
	text  *textOverlay
}

// frameClock turns presented frames into a frames per second figure once
// per window.
type frameClock struct {
	window time.Duration
	since  time.Time
	frames int
}

func (c *frameClock) tick(now time.Time) (fps float64, ok bool) {
	if c.since.IsZero() {
		c.since = now
	}
	c.frames++
	elapsed := now.Sub(c.since)
	if elapsed < c.window {
		return 0, false
	}
	fps = float64(c.frames) / elapsed.Seconds()
	c.frames, c.since = 0, now
	return fps, true
}

func NewApp(window *glfw.Window) *App {
	return &App{
		Window:     window,
		PixelRatio: 1,
		ClearColor: wgpu.Color{A: 1},
		Profiler:   NewProfiler(),
		Log:        nopLogger{},
		clock:      frameClock{window: time.Second},
	}
}

// Init creates the device, configures the surface for a width x height
// drawing buffer and builds both pipelines. A failing overlay is logged
// and skipped; points still draw.
func (a *App) Init(width, height int) error {
	if err := a.initDevice(); err != nil {
		return err
	}

	caps := a.Surface.GetCapabilities(a.Adapter)
	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	a.Surface.Configure(a.Adapter, a.Device, a.Config)

	a.BufferManager = gpu.NewPointBufferManager(a.Device)
	if err := a.setupPointsPipeline(a.Config.Format); err != nil {
		return err
	}

	text, err := newTextOverlay(a.Device, a.Queue, a.Config.Format, overlayFontSize)
	if err != nil {
		a.Log.Warnf("text overlay disabled: %v", err)
	}
	a.text = text
	return nil
}

func (a *App) initDevice() error {
	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(a.Window))

	var err error
	a.Adapter, err = a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	if a.Device, err = a.Adapter.RequestDevice(nil); err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()
	return nil
}

func (a *App) setupPointsPipeline(format wgpu.TextureFormat) error {
	mod, err := a.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Points Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.PointsWGSL},
	})
	if err != nil {
		return fmt.Errorf("points shader: %w", err)
	}
	defer mod.Release()

	instanceVec3 := func(location uint32) wgpu.VertexBufferLayout {
		return wgpu.VertexBufferLayout{
			ArrayStride: core.Vec3Stride,
			StepMode:    wgpu.VertexStepModeInstance,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, ShaderLocation: location},
			},
		}
	}
	additive := wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOne,
		Operation: wgpu.BlendOperationAdd,
	}
	a.PointsPipeline, err = a.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Points Pipeline",
		Vertex: wgpu.VertexState{
			Module:     mod,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{instanceVec3(0), instanceVec3(1)},
		},
		Fragment: &wgpu.FragmentState{
			Module:     mod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     &wgpu.BlendState{Color: additive, Alpha: additive},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		// No depth attachment: additive points never occlude each other.
		Primitive:   wgpu.PrimitiveState{Topology: wgpu.PrimitiveTopologyTriangleList},
		Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return fmt.Errorf("points pipeline: %w", err)
	}
	return nil
}

func (a *App) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	a.Config.Width, a.Config.Height = uint32(w), uint32(h)
	a.Surface.Configure(a.Adapter, a.Device, a.Config)
	a.Log.Debugf("surface resized to %dx%d", w, h)
}

// SetPoints uploads a particle buffer and draws it from the next frame on.
func (a *App) SetPoints(id uuid.UUID, positions, colors []mgl32.Vec3, size float32) *gpu.PointSet {
	a.Profiler.Begin("Upload")
	set := a.BufferManager.Upload(id, positions, colors)
	a.Profiler.End("Upload")
	a.Profiler.SetCount("Points", int(set.Count))
	a.PointSize = size
	return set
}

func (a *App) ReleasePoints(set *gpu.PointSet) {
	a.BufferManager.ReleasePoints(set)
}

func (a *App) SetCamera(view, proj mgl32.Mat4) {
	a.Camera.View = view
	a.Camera.Proj = proj
}

// Update pushes the camera uniform and lays out this frame's text.
func (a *App) Update() {
	w, h := a.Config.Width, a.Config.Height
	if a.DebugMode {
		a.DrawText(fmt.Sprintf("FPS: %.1f", a.FPS), float32(w)-160, 10, 0.6, [4]float32{1, 1, 0, 1})
		a.DrawText(a.Profiler.String(), float32(w)-260, 40, 0.45, [4]float32{0.7, 0.7, 0.7, 1})
	}

	a.Camera.PointSize = a.PointSize
	a.Camera.PixelRatio = a.PixelRatio
	a.Camera.ViewportWidth = float32(w)
	a.Camera.ViewportHeight = float32(h)
	if a.BufferManager.UpdateCamera(a.Camera) {
		if err := a.BufferManager.CreateBindGroup(a.PointsPipeline); err != nil {
			a.Log.Errorf("points bind group: %v", err)
		}
	}

	if a.text != nil {
		if err := a.text.prepare(w, h); err != nil {
			a.Log.Errorf("%v", err)
		}
	}
}

func (a *App) DrawText(text string, x, y, scale float32, color [4]float32) {
	if a.text != nil {
		a.text.add(text, x, y, scale, color)
	}
}

func (a *App) ClearText() {
	if a.text != nil {
		a.text.clear()
	}
}

func (a *App) Render() {
	a.Profiler.Begin("Render")
	defer a.Profiler.End("Render")

	frame, err := a.Surface.GetCurrentTexture()
	if err != nil {
		a.Log.Errorf("acquire surface texture: %v", err)
		return
	}
	defer frame.Release()
	target, err := frame.CreateView(nil)
	if err != nil {
		a.Log.Errorf("surface view: %v", err)
		return
	}
	defer target.Release()

	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		a.Log.Errorf("command encoder: %v", err)
		return
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       target,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: a.ClearColor,
		}},
	})
	a.drawPoints(pass)
	if a.text != nil {
		a.text.draw(pass)
	}
	if err := pass.End(); err != nil {
		a.Log.Errorf("end render pass: %v", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		a.Log.Errorf("finish encoder: %v", err)
		return
	}
	a.Queue.Submit(cmd)
	a.Surface.Present()

	if fps, ok := a.clock.tick(time.Now()); ok {
		a.FPS = fps
	}
}

// drawPoints issues one quad per particle: 6 vertices, Count instances.
func (a *App) drawPoints(pass *wgpu.RenderPassEncoder) {
	set := a.BufferManager.Current
	if set == nil || set.Count == 0 || a.BufferManager.BindGroup == nil {
		return
	}
	pass.SetPipeline(a.PointsPipeline)
	pass.SetBindGroup(0, a.BufferManager.BindGroup, nil)
	pass.SetVertexBuffer(0, set.Positions, 0, set.Positions.GetSize())
	pass.SetVertexBuffer(1, set.Colors, 0, set.Colors.GetSize())
	pass.Draw(6, set.Count, 0, 0)
}

// Release frees GPU objects, dependents before the device.
func (a *App) Release() {
	if a.text != nil {
		a.text.release()
		a.text = nil
	}
	if a.BufferManager != nil {
		a.BufferManager.Release()
	}
	if a.PointsPipeline != nil {
		a.PointsPipeline.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Adapter != nil {
		a.Adapter.Release()
	}
	if a.Surface != nil {
		a.Surface.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
}
