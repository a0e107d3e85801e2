package termview

import (
	"math"

	"github.com/gekko3d/galaxy"

	"github.com/go-gl/mathgl/mgl32"
)

// cellAspect is the height of a terminal cell in units of its width.
const cellAspect = 2

// Cell is one terminal cell of the projected cloud. Hits counts the
// particles that landed in it; Color is the brightest of them.
type Cell struct {
	Hits  int
	Color mgl32.Vec3
	luma  float32
}

// Grid is a row-major width x height raster.
type Grid struct {
	Width, Height int
	Cells         []Cell
}

func (g *Grid) At(x, y int) *Cell {
	return &g.Cells[y*g.Width+x]
}

// Rasterize projects every particle of buf through cam into a width x height
// cell grid. Brightest color wins per cell.
func Rasterize(buf *galaxy.ParticleBuffer, cam *galaxy.OrbitCamera, width, height int) *Grid {
	g := &Grid{Width: width, Height: height, Cells: make([]Cell, max(width*height, 0))}
	if buf.Len() == 0 || width <= 0 || height <= 0 {
		return g
	}

	cam.SetViewport(width, height*cellAspect)
	vp := cam.ViewProjection()
	for i, p := range buf.Positions {
		x, y, _, ok := cam.Project(vp, p, width, height)
		if !ok {
			continue
		}
		cx, cy, inside := cellOf(x, y, width, height)
		if !inside {
			continue
		}
		c := g.At(cx, cy)
		c.Hits++
		col := buf.Colors[i]
		if l := luma(col); l > c.luma || c.Hits == 1 {
			c.luma = l
			c.Color = col
		}
	}
	return g
}

// cellOf maps pixel coordinates to the cell containing them. Coordinates
// left of or above the grid are outside, even within one cell of it.
func cellOf(x, y float32, width, height int) (cx, cy int, ok bool) {
	fx, fy := math.Floor(float64(x)), math.Floor(float64(y))
	if fx < 0 || fy < 0 || fx >= float64(width) || fy >= float64(height) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

func luma(c mgl32.Vec3) float32 {
	return 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
}

// Glyph picks a character by hit density.
func Glyph(hits int) rune {
	switch {
	case hits <= 0:
		return ' '
	case hits == 1:
		return '.'
	case hits < 4:
		return '+'
	case hits < 8:
		return '*'
	default:
		return '@'
	}
}

// Boost approximates additive blending: cells hit often get brighter.
func Boost(c Cell) mgl32.Vec3 {
	k := float32(1) + float32(min(c.Hits, 8)-1)*0.15
	return mgl32.Vec3{
		min(c.Color[0]*k, 1),
		min(c.Color[1]*k, 1),
		min(c.Color[2]*k, 1),
	}
}
