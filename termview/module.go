package termview

import (
	"time"

	"github.com/gekko3d/galaxy"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	rotateStep = 12 // pixels of virtual drag per key press
	burstQuiet = 300 * time.Millisecond
)

// Module renders the galaxy into the terminal. Install after
// galaxy.GalaxyModule, which should run in async mode so the screen stays
// responsive while large clouds generate.
type Module struct {
	Camera galaxy.CameraConfig
	// FPS caps redraws. Zero means 30.
	FPS int
	// QuickSlot names the preset behind F5 and F9.
	QuickSlot string
	// Screen overrides the real terminal, for tests.
	Screen tcell.Screen
}

type State struct {
	Screen tcell.Screen
	Camera *galaxy.OrbitCamera
	Panel  *galaxy.Panel

	events    chan tcell.Event
	burst     editBurst
	frame     time.Duration
	lastDraw  time.Time
	quickSlot string
}

func (m Module) Install(app *galaxy.App, cmd *galaxy.Commands) {
	galaxy.EnsureSingleRenderer(app, galaxy.RendererTerminal)

	store, ok := galaxy.Resource[galaxy.ParameterStore](app)
	if !ok {
		panic("termview.Module requires galaxy.GalaxyModule")
	}
	if _, ok := galaxy.Resource[galaxy.Presets](app); !ok {
		cmd.AddResources(galaxy.NewPresets(nil, app.Logger()))
	}

	screen := m.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			panic(err)
		}
	}
	if err := screen.Init(); err != nil {
		panic(err)
	}
	screen.Clear()

	fps := m.FPS
	if fps <= 0 {
		fps = 30
	}
	slot := m.QuickSlot
	if slot == "" {
		slot = "quick"
	}
	state := &State{
		Screen:    screen,
		Camera:    galaxy.NewOrbitCameraFromConfig(m.Camera),
		Panel:     galaxy.NewPanel(store),
		events:    make(chan tcell.Event, 64),
		burst:     editBurst{quiet: burstQuiet},
		frame:     time.Second / time.Duration(fps),
		quickSlot: slot,
	}
	cmd.AddResources(state)

	// PollEvent returns nil once Fini runs, which ends the pump.
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(state.events)
				return
			}
			state.events <- ev
		}
	}()
	app.OnShutdown(screen.Fini)

	cmd.UseSystem(galaxy.System(terminalInputSystem).InStage(galaxy.PreUpdate))
	cmd.UseSystem(galaxy.System(terminalCameraSystem).InStage(galaxy.PostUpdate))
	cmd.UseSystem(galaxy.System(terminalRenderSystem).InStage(galaxy.Render))
	cmd.UseSystem(galaxy.System(terminalPaceSystem).InStage(galaxy.Finale))
}

func terminalInputSystem(state *State, presets *galaxy.Presets, cmd *galaxy.Commands) {
	for {
		select {
		case ev, ok := <-state.events:
			if !ok {
				cmd.Stop()
				return
			}
			state.handle(ev, presets, cmd)
		default:
			if state.burst.due(time.Now()) {
				state.Panel.FinishEdit()
			}
			return
		}
	}
}

func (s *State) handle(ev tcell.Event, presets *galaxy.Presets, cmd *galaxy.Commands) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.Screen.Sync()
	case *tcell.EventKey:
		s.apply(keyAction(ev.Key(), ev.Rune(), ev.Modifiers()), presets, cmd)
	}
}

func (s *State) apply(act action, presets *galaxy.Presets, cmd *galaxy.Commands) {
	_, h := s.Screen.Size()
	viewport := h * cellAspect
	switch act {
	case actQuit:
		cmd.Stop()
	case actPrev:
		s.Panel.FinishEdit()
		s.Panel.Prev()
	case actNext:
		s.Panel.FinishEdit()
		s.Panel.Next()
	case actInc, actDec, actIncFast, actDecFast:
		steps := map[action]int{actInc: 1, actDec: -1, actIncFast: 10, actDecFast: -10}[act]
		s.Panel.Nudge(steps)
		s.burst.touch(time.Now())
	case actRotateLeft:
		s.Camera.Rotate(-rotateStep, 0, viewport)
	case actRotateRight:
		s.Camera.Rotate(rotateStep, 0, viewport)
	case actRotateUp:
		s.Camera.Rotate(0, -rotateStep, viewport)
	case actRotateDown:
		s.Camera.Rotate(0, rotateStep, viewport)
	case actZoomIn:
		s.Camera.Zoom(1)
	case actZoomOut:
		s.Camera.Zoom(-1)
	case actReset:
		s.Camera.Reset()
	case actToggle:
		s.Panel.Toggle()
	case actSave:
		if err := presets.Save(s.quickSlot, s.Panel.Store().Params()); err != nil {
			s.Panel.SetStatus("save %s: %v", s.quickSlot, err)
		} else {
			s.Panel.SetStatus("saved preset %s", s.quickSlot)
		}
	case actLoad:
		params, err := presets.Load(s.quickSlot)
		if err != nil {
			s.Panel.SetStatus("load %s: %v", s.quickSlot, err)
			return
		}
		s.Panel.Store().Set(params)
		s.Panel.Store().Commit()
		s.Panel.SetStatus("loaded preset %s", s.quickSlot)
	}
}

func terminalCameraSystem(state *State) {
	state.Camera.Update()
}

func terminalRenderSystem(state *State, slot *galaxy.BufferSlot, regen *galaxy.Regenerator) {
	screen := state.Screen
	w, h := screen.Size()
	screen.Clear()

	grid := Rasterize(slot.Current(), state.Camera, w, h)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := *grid.At(x, y)
			if c.Hits == 0 {
				continue
			}
			col := Boost(c)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(
				int32(col[0]*255), int32(col[1]*255), int32(col[2]*255)))
			screen.SetContent(x, y, Glyph(c.Hits), nil, style)
		}
	}

	if state.Panel.Visible {
		text := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		selected := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
		lines := state.Panel.Lines()
		for i, line := range lines {
			style := text
			if galaxy.PanelField(i) == state.Panel.Selected {
				style = selected
			}
			drawString(screen, 1, i, line, style)
		}
		drawString(screen, 1, len(lines)+1, regen.Summary(), tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
	screen.Show()
	state.lastDraw = time.Now()
}

// terminalPaceSystem sleeps out the rest of the frame budget.
func terminalPaceSystem(state *State) {
	if rest := state.frame - time.Since(state.lastDraw); rest > 0 {
		time.Sleep(rest)
	}
}

func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
