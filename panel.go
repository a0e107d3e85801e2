package galaxy

import (
	"fmt"
	"math"
	"strconv"
)

type PanelField int

const (
	FieldCount PanelField = iota
	FieldSize
	FieldRadius
	FieldBranches
	FieldSpin
	FieldRandomness
	FieldRandomnessPower
	FieldInsideColor
	FieldOutsideColor
	panelFieldCount
)

// FieldBounds is the editable range of one field. For the two colors the
// range is in hue degrees.
type FieldBounds struct {
	Name string
	Min  float64
	Max  float64
	Step float64
}

var panelBounds = [panelFieldCount]FieldBounds{
	FieldCount:           {Name: "count", Min: 100, Max: 100000, Step: 1000},
	FieldSize:            {Name: "size", Min: 0.001, Max: 0.1, Step: 0.001},
	FieldRadius:          {Name: "radius", Min: 0.001, Max: 8, Step: 0.001},
	FieldBranches:        {Name: "branches", Min: 2, Max: 9, Step: 1},
	FieldSpin:            {Name: "spin", Min: -5, Max: 5, Step: 0.01},
	FieldRandomness:      {Name: "randomness", Min: 0, Max: 1, Step: 0.01},
	FieldRandomnessPower: {Name: "randomnessPower", Min: 0, Max: 10, Step: 0.001},
	FieldInsideColor:     {Name: "insideColor", Min: 0, Max: 360, Step: 5},
	FieldOutsideColor:    {Name: "outsideColor", Min: 0, Max: 360, Step: 5},
}

func (f PanelField) Bounds() FieldBounds { return panelBounds[f] }

func (f PanelField) String() string {
	if f < 0 || f >= panelFieldCount {
		return "field(" + strconv.Itoa(int(f)) + ")"
	}
	return panelBounds[f].Name
}

// Panel edits a ParameterStore one field at a time. Nudges change the store
// immediately; the store is committed once when the edit is finished.
type Panel struct {
	store    *ParameterStore
	Selected PanelField
	Visible  bool
	editing  bool
	status   string
}

func NewPanel(store *ParameterStore) *Panel {
	return &Panel{store: store, Visible: true}
}

func (p *Panel) Store() *ParameterStore { return p.store }

func (p *Panel) Next() {
	p.Selected = (p.Selected + 1) % panelFieldCount
}

func (p *Panel) Prev() {
	p.Selected = (p.Selected + panelFieldCount - 1) % panelFieldCount
}

func (p *Panel) Toggle() { p.Visible = !p.Visible }

func (p *Panel) Editing() bool { return p.editing }

// Nudge moves the selected field by steps increments, snapped to the step
// grid and clamped into bounds.
func (p *Panel) Nudge(steps int) {
	if steps == 0 {
		return
	}
	field := p.Selected
	b := field.Bounds()
	p.store.Update(func(gp *GalaxyParameters) {
		switch field {
		case FieldCount:
			gp.Count = int(stepValue(float64(gp.Count), steps, b))
		case FieldSize:
			gp.Size = stepValue(gp.Size, steps, b)
		case FieldRadius:
			gp.Radius = stepValue(gp.Radius, steps, b)
		case FieldBranches:
			gp.Branches = int(stepValue(float64(gp.Branches), steps, b))
		case FieldSpin:
			gp.Spin = stepValue(gp.Spin, steps, b)
		case FieldRandomness:
			gp.Randomness = stepValue(gp.Randomness, steps, b)
		case FieldRandomnessPower:
			gp.RandomnessPower = stepValue(gp.RandomnessPower, steps, b)
		case FieldInsideColor:
			gp.InsideColor = gp.InsideColor.RotateHue(float64(steps) * b.Step)
		case FieldOutsideColor:
			gp.OutsideColor = gp.OutsideColor.RotateHue(float64(steps) * b.Step)
		}
	})
	p.editing = true
}

// FinishEdit commits the store if an edit is open and reports whether it did.
func (p *Panel) FinishEdit() bool {
	if !p.editing {
		return false
	}
	p.editing = false
	p.store.Commit()
	return true
}

// SetStatus shows a one line message under the fields.
func (p *Panel) SetStatus(format string, args ...any) {
	p.status = fmt.Sprintf(format, args...)
}

func (p *Panel) Status() string { return p.status }

// Value formats the current value of f.
func (p *Panel) Value(f PanelField) string {
	gp := p.store.Params()
	switch f {
	case FieldCount:
		return strconv.Itoa(gp.Count)
	case FieldSize:
		return strconv.FormatFloat(gp.Size, 'f', 3, 64)
	case FieldRadius:
		return strconv.FormatFloat(gp.Radius, 'f', 3, 64)
	case FieldBranches:
		return strconv.Itoa(gp.Branches)
	case FieldSpin:
		return strconv.FormatFloat(gp.Spin, 'f', 2, 64)
	case FieldRandomness:
		return strconv.FormatFloat(gp.Randomness, 'f', 2, 64)
	case FieldRandomnessPower:
		return strconv.FormatFloat(gp.RandomnessPower, 'f', 3, 64)
	case FieldInsideColor:
		return gp.InsideColor.Hex()
	case FieldOutsideColor:
		return gp.OutsideColor.Hex()
	}
	return ""
}

// Lines renders the panel as text, the selected field marked with '>'.
func (p *Panel) Lines() []string {
	lines := make([]string, 0, panelFieldCount+1)
	for f := PanelField(0); f < panelFieldCount; f++ {
		marker := " "
		if f == p.Selected {
			marker = ">"
		}
		lines = append(lines, fmt.Sprintf("%s %-16s %s", marker, f.String(), p.Value(f)))
	}
	if p.status != "" {
		lines = append(lines, p.status)
	}
	return lines
}

func stepValue(v float64, steps int, b FieldBounds) float64 {
	next := math.Round(v/b.Step+float64(steps)) * b.Step
	// Trim float noise left by the step multiplication.
	next, _ = strconv.ParseFloat(strconv.FormatFloat(next, 'f', decimals(b.Step), 64), 64)
	return math.Max(b.Min, math.Min(b.Max, next))
}

func decimals(step float64) int {
	d := 0
	for step < 1 && d < 9 {
		step *= 10
		d++
	}
	return d
}

// RotateHue turns c around the HSV hue circle by deg degrees, keeping
// saturation and value.
func (c Color) RotateHue(deg float64) Color {
	h, s, v := c.HSV()
	h = math.Mod(h+deg, 360)
	if h < 0 {
		h += 360
	}
	return ColorFromHSV(h, s, v)
}

// HSV returns hue in degrees [0,360), saturation and value in [0,1].
func (c Color) HSV() (h, s, v float64) {
	maxC := math.Max(c.R, math.Max(c.G, c.B))
	minC := math.Min(c.R, math.Min(c.G, c.B))
	v = maxC
	d := maxC - minC
	if maxC > 0 {
		s = d / maxC
	}
	if d == 0 {
		return 0, s, v
	}
	switch maxC {
	case c.R:
		h = math.Mod((c.G-c.B)/d, 6)
	case c.G:
		h = (c.B-c.R)/d + 2
	default:
		h = (c.R-c.G)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, v
}

func ColorFromHSV(h, s, v float64) Color {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return Color{R: r + m, G: g + m, B: b + m}
}
