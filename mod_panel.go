package galaxy

import (
	"reflect"
)

const (
	panelRepeatDelay    = 0.35
	panelRepeatInterval = 0.05
)

type HudText struct {
	Text  string
	X, Y  float32
	Scale float32
	Color [4]float32
}

// Hud collects text for the current frame. The renderer drains it.
type Hud struct {
	Items []HudText
}

func (h *Hud) Print(text string, x, y float32, scale float32, color [4]float32) {
	h.Items = append(h.Items, HudText{Text: text, X: x, Y: y, Scale: scale, Color: color})
}

func (h *Hud) Clear() {
	h.Items = h.Items[:0]
}

func ensureHud(app *App) {
	if _, ok := app.resources[reflect.TypeOf((*Hud)(nil)).Elem()]; !ok {
		app.addResources(&Hud{})
	}
}

// PanelModule wires the keyboard parameter editor. Install after
// GalaxyModule; presets are used when PresetsModule was installed first.
type PanelModule struct {
	QuickSlot string
	Hidden    bool
}

type panelKeys struct {
	held      float64
	nextFire  float64
	quickSlot string
}

func (mod PanelModule) Install(app *App, cmd *Commands) {
	store, ok := Resource[ParameterStore](app)
	if !ok {
		panic("PanelModule requires GalaxyModule")
	}
	if _, ok := Resource[Presets](app); !ok {
		app.addResources(NewPresets(nil, app.Logger()))
	}
	ensureHud(app)

	slot := mod.QuickSlot
	if slot == "" {
		slot = "quick"
	}
	panel := NewPanel(store)
	panel.Visible = !mod.Hidden
	cmd.AddResources(panel, &panelKeys{quickSlot: slot})

	app.UseSystem(
		System(panelInputSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(panelHudSystem).
			InStage(PostUpdate),
	)
}

func panelInputSystem(input *Input, t *Time, panel *Panel, keys *panelKeys, presets *Presets, cmd *Commands) {
	if input.JustPressed[KeyH] {
		panel.Toggle()
	}
	if input.JustPressed[KeyUp] {
		panel.Prev()
	}
	if input.JustPressed[KeyDown] {
		panel.Next()
	}

	dir := 0
	if input.Pressed[KeyRight] {
		dir++
	}
	if input.Pressed[KeyLeft] {
		dir--
	}
	mult := 1
	if input.Pressed[KeyShift] {
		mult = 10
	}

	switch {
	case input.JustPressed[KeyRight] || input.JustPressed[KeyLeft]:
		keys.held = 0
		keys.nextFire = panelRepeatDelay
		panel.Nudge(dir * mult)
	case dir != 0:
		keys.held += t.Dt.Seconds()
		for keys.held >= keys.nextFire {
			keys.nextFire += panelRepeatInterval
			panel.Nudge(dir * mult)
		}
	}

	if (input.JustReleased[KeyRight] || input.JustReleased[KeyLeft]) && !input.Any(KeyRight, KeyLeft) {
		if panel.FinishEdit() {
			cmd.Logger().Debugf("panel: committed %s = %s", panel.Selected, panel.Value(panel.Selected))
		}
	}

	if input.JustPressed[KeyF5] {
		savePreset(panel, presets, keys.quickSlot)
	}
	if input.JustPressed[KeyF9] {
		loadPreset(panel, presets, keys.quickSlot)
	}
}

func savePreset(panel *Panel, presets *Presets, name string) {
	if err := presets.Save(name, panel.Store().Params()); err != nil {
		panel.SetStatus("save %s: %v", name, err)
		return
	}
	panel.SetStatus("saved preset %s", name)
}

// loadPreset replaces the store contents and commits them as one edit.
func loadPreset(panel *Panel, presets *Presets, name string) {
	params, err := presets.Load(name)
	if err != nil {
		panel.SetStatus("load %s: %v", name, err)
		return
	}
	panel.Store().Set(params)
	panel.Store().Commit()
	panel.SetStatus("loaded preset %s", name)
}

var (
	hudWhite  = [4]float32{1, 1, 1, 1}
	hudYellow = [4]float32{1, 1, 0, 1}
	hudGray   = [4]float32{0.6, 0.6, 0.6, 1}
)

func panelHudSystem(panel *Panel, regen *Regenerator, hud *Hud) {
	if !panel.Visible {
		return
	}
	const lineHeight = 22
	y := float32(10)
	for i, line := range panel.Lines() {
		color := hudWhite
		if PanelField(i) == panel.Selected {
			color = hudYellow
		}
		hud.Print(line, 10, y, 0.6, color)
		y += lineHeight
	}

	hud.Print(regen.Summary(), 10, y+lineHeight/2, 0.5, hudGray)
	if err := regen.LastError(); err != nil {
		hud.Print(err.Error(), 10, y+2*lineHeight, 0.5, [4]float32{1, 0.3, 0.3, 1})
	}
}
