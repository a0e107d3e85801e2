package core

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextVertex matches the text pipeline's vertex layout: clip position, atlas
// uv and straight alpha color.
type TextVertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
}

type TextItem struct {
	Text     string
	Position [2]float32 // pixels from the top left corner
	Scale    float32
	Color    [4]float32
}

// Glyph locates one rune in the atlas. Size and Bearing are pixels at scale 1.
type Glyph struct {
	UV0, UV1 [2]float32
	Size     [2]float32
	Bearing  [2]float32
	Advance  float32
}

// HudRunes is the character set baked into the atlas.
const HudRunes = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~°·"

const (
	glyphPad     = 2
	minAtlasSize = 128
	maxAtlasSize = 4096
	atlasFontDPI = 72
)

type TextRenderer struct {
	AtlasImage *image.Alpha
	Glyphs     map[rune]Glyph
	Face       font.Face

	ascent, lineHeight float32
}

// NewTextRenderer bakes HudRunes of the bundled Go Regular font.
func NewTextRenderer(fontSize float64) (*TextRenderer, error) {
	return NewTextRendererFromTTF(goregular.TTF, fontSize)
}

func NewTextRendererFromTTF(ttf []byte, fontSize float64) (*TextRenderer, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     atlasFontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}

	// Double the atlas until every glyph fits.
	for size := minAtlasSize; size <= maxAtlasSize; size *= 2 {
		if tr, ok := bakeAtlas(face, size); ok {
			return tr, nil
		}
	}
	return nil, fmt.Errorf("glyphs at %.0fpt exceed a %dpx atlas", fontSize, maxAtlasSize)
}

func bakeAtlas(face font.Face, size int) (*TextRenderer, bool) {
	img := image.NewAlpha(image.Rect(0, 0, size, size))
	glyphs := make(map[rune]Glyph, len(HudRunes))
	pack := shelfPacker{size: size, x: glyphPad, y: glyphPad}
	inv := 1 / float32(size)

	for _, r := range HudRunes {
		bounds, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		at, fits := pack.place(bounds.Dx(), bounds.Dy())
		if !fits {
			return nil, false
		}
		dst := image.Rectangle{Min: at, Max: at.Add(bounds.Size())}
		draw.Draw(img, dst, mask, maskp, draw.Src)

		glyphs[r] = Glyph{
			UV0:     [2]float32{float32(dst.Min.X) * inv, float32(dst.Min.Y) * inv},
			UV1:     [2]float32{float32(dst.Max.X) * inv, float32(dst.Max.Y) * inv},
			Size:    [2]float32{float32(bounds.Dx()), float32(bounds.Dy())},
			Bearing: [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			Advance: float32(adv) / 64,
		}
	}

	m := face.Metrics()
	return &TextRenderer{
		AtlasImage: img,
		Glyphs:     glyphs,
		Face:       face,
		ascent:     float32(m.Ascent.Ceil()),
		lineHeight: float32(m.Height.Ceil()),
	}, true
}

// shelfPacker fills the atlas left to right in rows as tall as their
// tallest glyph.
type shelfPacker struct {
	size   int
	x, y   int
	shelfH int
}

func (p *shelfPacker) place(w, h int) (image.Point, bool) {
	if p.x+w+glyphPad > p.size {
		p.x = glyphPad
		p.y += p.shelfH + glyphPad
		p.shelfH = 0
	}
	if p.y+h+glyphPad > p.size || w+2*glyphPad > p.size {
		return image.Point{}, false
	}
	at := image.Pt(p.x, p.y)
	p.x += w + glyphPad
	p.shelfH = max(p.shelfH, h)
	return at, true
}

// BuildVertices lays items out as two triangles per glyph in clip space for
// a screenW x screenH target. '\n' starts a new line.
func (tr *TextRenderer) BuildVertices(items []TextItem, screenW, screenH int) []TextVertex {
	out := make([]TextVertex, 0, len(items)*6)
	if screenW <= 0 || screenH <= 0 {
		return out
	}
	toClip := func(x, y float32) [2]float32 {
		return [2]float32{x/float32(screenW)*2 - 1, 1 - y/float32(screenH)*2}
	}

	for _, item := range items {
		s := item.Scale
		penX, penY := item.Position[0], item.Position[1]+tr.ascent*s
		for _, r := range item.Text {
			if r == '\n' {
				penX = item.Position[0]
				penY += tr.lineHeight * s
				continue
			}
			g, ok := tr.Glyphs[r]
			if !ok {
				continue
			}
			left := penX + g.Bearing[0]*s
			top := penY + g.Bearing[1]*s
			tl := toClip(left, top)
			br := toClip(left+g.Size[0]*s, top+g.Size[1]*s)
			out = appendQuad(out, tl, br, g.UV0, g.UV1, item.Color)
			penX += g.Advance * s
		}
	}
	return out
}

func appendQuad(out []TextVertex, tl, br, uv0, uv1 [2]float32, color [4]float32) []TextVertex {
	tr := TextVertex{Pos: [2]float32{br[0], tl[1]}, UV: [2]float32{uv1[0], uv0[1]}, Color: color}
	bl := TextVertex{Pos: [2]float32{tl[0], br[1]}, UV: [2]float32{uv0[0], uv1[1]}, Color: color}
	return append(out,
		TextVertex{Pos: tl, UV: uv0, Color: color}, tr, bl,
		tr, TextVertex{Pos: br, UV: uv1, Color: color}, bl,
	)
}

// MeasureText returns the pixel width of the widest line and the total
// height of text at scale.
func (tr *TextRenderer) MeasureText(text string, scale float32) (float32, float32) {
	if tr == nil {
		return 0, 0
	}
	var widest, line float32
	lines := 1
	for _, r := range text {
		if r == '\n' {
			widest = max(widest, line)
			line = 0
			lines++
			continue
		}
		line += tr.Glyphs[r].Advance * scale
	}
	return max(widest, line), tr.lineHeight * scale * float32(lines)
}
