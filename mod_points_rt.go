package galaxy

import (
	app_rt "github.com/gekko3d/galaxy/pointsrt/rt/app"
)

// PointsRtModule draws the installed particle buffer with WebGPU. It needs
// GalaxyModule and OrbitCameraModule installed first.
type PointsRtModule struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string
	DebugMode    bool
}

type PointsRtState struct {
	RtApp *app_rt.App

	window *WindowState
	shown  *ParticleBuffer
}

// Shown is the buffer currently on the GPU.
func (s *PointsRtState) Shown() *ParticleBuffer { return s.shown }

func (s *PointsRtState) FPS() float64 { return s.RtApp.FPS }

func (s *PointsRtState) SetDebugMode(enabled bool) { s.RtApp.DebugMode = enabled }

func (mod PointsRtModule) Install(app *App, cmd *Commands) {
	claimRenderer(app, RendererPoints)
	ensureWindowResource(app, mod.WindowWidth, mod.WindowHeight, mod.WindowTitle)
	ensureHud(app)

	window, _ := Resource[WindowState](app)
	rt := app_rt.NewApp(window.windowGlfw)
	rt.Log = app.Logger()
	rt.DebugMode = mod.DebugMode
	rt.PixelRatio = float32(window.PixelRatio())
	w, h := window.RenderSize()
	if err := rt.Init(w, h); err != nil {
		panic(err)
	}

	state := &PointsRtState{RtApp: rt, window: window}
	cmd.AddResources(state)
	app.OnShutdown(rt.Release)

	app.UseSystem(
		System(pointsRtSyncSystem).
			InStage(Render),
	)
	app.UseSystem(
		System(pointsRtRenderSystem).
			InStage(Render),
	)
	app.UseSystem(
		System(pointsRtDebugSystem).
			InStage(Update),
	)
}

// pointsRtSyncSystem uploads a newly installed buffer and hooks its release
// to free the GPU copy.
func pointsRtSyncSystem(state *PointsRtState, slot *BufferSlot, cam *OrbitCamera, hud *Hud) {
	rt := state.RtApp

	if state.window.TakeResized() {
		w, h := state.window.RenderSize()
		rt.PixelRatio = float32(state.window.PixelRatio())
		rt.Resize(w, h)
	}

	if buf := slot.Current(); buf != state.shown {
		state.shown = buf
		if buf != nil {
			set := rt.SetPoints(buf.ID, buf.Positions, buf.Colors, buf.Size)
			buf.OnRelease(func() {
				rt.ReleasePoints(set)
			})
		}
	}

	rt.SetCamera(cam.View(), cam.Projection())

	ratio := rt.PixelRatio
	for _, item := range hud.Items {
		rt.DrawText(item.Text, item.X*ratio, item.Y*ratio, item.Scale*ratio, item.Color)
	}
}

func pointsRtRenderSystem(state *PointsRtState, hud *Hud) {
	state.RtApp.Update()
	state.RtApp.Render()
	state.RtApp.ClearText()
	hud.Clear()
}

func pointsRtDebugSystem(input *Input, state *PointsRtState) {
	if input.JustPressed[KeyP] {
		state.SetDebugMode(!state.RtApp.DebugMode)
	}
}
