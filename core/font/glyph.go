package font

import (
	"golang.org/x/image/math/f32"
)

// GlyphIndex identifies a glyph within a face. For bitmap fonts it is the
// Unicode code-point the glyph depicts.
type GlyphIndex uint32

// Padding is a distance on each side of a rectangle, indexed by Top, Right,
// Bottom and Left.
type Padding [4]float32

// Sides of a Padding.
const (
	Top int = iota
	Right
	Bottom
	Left
)

// Glyph holds the metrics of a single character of a face, together with its
// location in the face's texture atlas.
//
// Glyphs are values. Setters invalidate the derived placement vectors; they
// are re-derived when the glyph is upserted into a Face.
type Glyph struct {
	index      GlyphIndex
	stOrigin   f32.Vec2 // lower left of sub-texture, normalized
	stExtent   f32.Vec2 // width and height of sub-texture, normalized
	bearing    f32.Vec2 // offset of the glyph box from the pen position on the baseline
	extent     f32.Vec2 // width and height of the glyph box
	advance    float32
	kernings   map[GlyphIndex]float32
	depictable bool

	// derived, in font-face space
	penOrigin    f32.Vec3
	penTangent   f32.Vec3
	penBitangent f32.Vec3
	uvRect       f32.Vec4
}

// NewGlyph creates an empty, not depictable glyph for index i.
func NewGlyph(i GlyphIndex) Glyph {
	return Glyph{index: i}
}

// Index returns the glyph's index within its face.
func (g *Glyph) Index() GlyphIndex {
	return g.index
}

// SubTextureOrigin is the lower left corner of the glyph's atlas rectangle,
// in normalized texture coordinates.
func (g *Glyph) SubTextureOrigin() f32.Vec2 {
	return g.stOrigin
}

// SetSubTextureOrigin sets the lower left corner of the glyph's atlas rectangle.
func (g *Glyph) SetSubTextureOrigin(o f32.Vec2) {
	g.stOrigin = o
}

// SubTextureExtent is the size of the glyph's atlas rectangle, in normalized
// texture coordinates.
func (g *Glyph) SubTextureExtent() f32.Vec2 {
	return g.stExtent
}

// SetSubTextureExtent sets the size of the glyph's atlas rectangle. A glyph
// with a zero-area atlas rectangle is not depictable.
func (g *Glyph) SetSubTextureExtent(e f32.Vec2) {
	g.stExtent = e
	g.depictable = e[0] > 0 && e[1] > 0
}

// Depictable is true if the glyph has a visual representation in the atlas.
// Glyphs which are not depictable (spaces, control characters) only advance
// the pen.
func (g *Glyph) Depictable() bool {
	return g.depictable
}

// Bearing is the offset of the glyph's box from the pen position on the baseline.
func (g *Glyph) Bearing() f32.Vec2 {
	return g.bearing
}

// SetBearing sets the offset of the glyph's box relative to the pen position.
func (g *Glyph) SetBearing(b f32.Vec2) {
	g.bearing = b
}

// SetBearingFromOffsets sets the bearing from offsets given relative to the
// top of a line, as is usual for bitmap font descriptions.
func (g *Glyph) SetBearingFromOffsets(ascent, xoffset, yoffset float32) {
	g.bearing = f32.Vec2{xoffset, ascent - yoffset}
}

// Extent is the width and height of the glyph's box.
func (g *Glyph) Extent() f32.Vec2 {
	return g.extent
}

// SetExtent sets the width and height of the glyph's box.
func (g *Glyph) SetExtent(e f32.Vec2) {
	g.extent = e
}

// Advance is the horizontal pen movement after the glyph has been set.
func (g *Glyph) Advance() float32 {
	return g.advance
}

// SetAdvance sets the horizontal pen movement for this glyph.
func (g *Glyph) SetAdvance(a float32) {
	g.advance = a
}

// Kerning returns the horizontal adjustment between this glyph and a
// subsequent glyph. Usually negative; 0 for pairs without kerning.
func (g *Glyph) Kerning(subsequent GlyphIndex) float32 {
	return g.kernings[subsequent] // nil map reads are fine
}

// SetKerning sets the kerning between this glyph and a subsequent one.
func (g *Glyph) SetKerning(subsequent GlyphIndex, kerning float32) {
	if g.kernings == nil {
		g.kernings = make(map[GlyphIndex]float32)
	}
	g.kernings[subsequent] = kerning
}

// KerningCount returns the number of kerning pairs starting with this glyph.
func (g *Glyph) KerningCount() int {
	return len(g.kernings)
}

// PenOrigin is the lower left corner of the glyph's quad relative to the pen,
// including the face's padding.
func (g *Glyph) PenOrigin() f32.Vec3 {
	return g.penOrigin
}

// PenTangent spans the glyph quad horizontally.
func (g *Glyph) PenTangent() f32.Vec3 {
	return g.penTangent
}

// PenBitangent spans the glyph quad vertically.
func (g *Glyph) PenBitangent() f32.Vec3 {
	return g.penBitangent
}

// SubTextureRect is the padded atlas rectangle of the glyph as
// (lower left u, lower left v, upper right u, upper right v).
func (g *Glyph) SubTextureRect() f32.Vec4 {
	return g.uvRect
}

// derive computes the placement vectors from the glyph's metrics, a padding
// and the inverse extent of the atlas (in 1/pixels).
func (g *Glyph) derive(p Padding, inv f32.Vec2) {
	g.penOrigin = f32.Vec3{
		g.bearing[0] - p[Left],
		g.bearing[1] - g.extent[1] - p[Bottom],
		0,
	}
	g.penTangent = f32.Vec3{g.extent[0] + p[Right] + p[Left], 0, 0}
	g.penBitangent = f32.Vec3{0, g.extent[1] + p[Top] + p[Bottom], 0}
	g.uvRect = f32.Vec4{
		g.stOrigin[0] - p[Left]*inv[0],
		g.stOrigin[1] - p[Bottom]*inv[1],
		g.stOrigin[0] + g.stExtent[0] + p[Right]*inv[0],
		g.stOrigin[1] + g.stExtent[1] + p[Top]*inv[1],
	}
}
