package galaxy

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is a linear RGB triple with components in [0,1].
type Color struct {
	R, G, B float64
}

// ParseHexColor accepts "#rrggbb", "rrggbb" and the "#rgb" shorthand.
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("color %q: expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{
		R: float64((v>>16)&0xff) / 255.0,
		G: float64((v>>8)&0xff) / 255.0,
		B: float64(v&0xff) / 255.0,
	}, nil
}

// MustParseHexColor panics on malformed input. Use only for constants.
func MustParseHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

func (c Color) String() string { return c.Hex() }

// Lerp moves c toward o by t in the space both colors are defined in.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHexColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) finite() bool {
	return finite(c.R) && finite(c.G) && finite(c.B)
}

func channelByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// GalaxyParameters is the full generation configuration. Size is never used by
// the generation math; it is forwarded to the renderer with the buffer.
type GalaxyParameters struct {
	Count           int     `yaml:"count"`
	Size            float64 `yaml:"size"`
	Radius          float64 `yaml:"radius"`
	Branches        int     `yaml:"branches"`
	Spin            float64 `yaml:"spin"`
	Randomness      float64 `yaml:"randomness"`
	RandomnessPower float64 `yaml:"randomness_power"`
	InsideColor     Color   `yaml:"inside_color"`
	OutsideColor    Color   `yaml:"outside_color"`
}

func DefaultParameters() GalaxyParameters {
	return GalaxyParameters{
		Count:           1000,
		Size:            0.02,
		Radius:          5,
		Branches:        5,
		Spin:            1,
		Randomness:      0.2,
		RandomnessPower: 3,
		InsideColor:     MustParseHexColor("#ff6030"),
		OutsideColor:    MustParseHexColor("#1b3984"),
	}
}

// Validate checks the constraints the generator relies on. It never clamps.
func (p GalaxyParameters) Validate() error {
	switch {
	case p.Count < 1:
		return invalidParameter("count", p.Count, "must be >= 1")
	case !finite(p.Size) || p.Size <= 0:
		return invalidParameter("size", p.Size, "must be > 0")
	case !finite(p.Radius) || p.Radius <= 0:
		return invalidParameter("radius", p.Radius, "must be > 0")
	case p.Branches < 1:
		return invalidParameter("branches", p.Branches, "must be >= 1")
	case !finite(p.Spin):
		return invalidParameter("spin", p.Spin, "must be finite")
	case !finite(p.Randomness) || p.Randomness < 0:
		return invalidParameter("randomness", p.Randomness, "must be >= 0")
	case !finite(p.RandomnessPower) || p.RandomnessPower < 0:
		return invalidParameter("randomnessPower", p.RandomnessPower, "must be >= 0")
	}
	if !p.InsideColor.finite() {
		return invalidParameter("insideColor", p.InsideColor, "components must be finite")
	}
	if !p.OutsideColor.finite() {
		return invalidParameter("outsideColor", p.OutsideColor, "components must be finite")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
