package font

import (
	"errors"
	"fmt"
	"sort"

	"github.com/npillmayer/tyll/core"
	"golang.org/x/image/math/f32"
)

// ErrNoSuchGlyph is returned if an operation requires a glyph which is not
// contained in a face.
var ErrNoSuchGlyph = errors.New("no such glyph in font face")

// Face is a bitmap font: a set of glyphs located in a single texture atlas,
// plus font-wide metrics.
//
// Faces are mutable during loading only. Once loading is complete they are
// treated as read-only and may be shared between goroutines.
type Face struct {
	Name        string  // font name, informational
	NominalSize float32 // size the font has been rendered at, informational

	ascent  float32
	descent float32
	linegap float32
	glyphs  map[GlyphIndex]*Glyph
	texExt  [2]int   // atlas extent in pixels
	texInv  f32.Vec2 // 1/texExt
	padding Padding
	texture Texture
}

// NewFace creates an empty face.
func NewFace() *Face {
	return &Face{
		glyphs: make(map[GlyphIndex]*Glyph),
	}
}

func (f *Face) String() string {
	return fmt.Sprintf("Face[%s, size=%.1f, %d glyphs]", f.Name, f.Size(), len(f.glyphs))
}

// --- Metrics ---------------------------------------------------------------

// Ascent is the distance of the font's top from the baseline.
func (f *Face) Ascent() float32 {
	return f.ascent
}

// SetAscent sets the ascent. Ascent has to be positive.
func (f *Face) SetAscent(a float32) error {
	if a <= 0 {
		return core.Error(core.EINVALID, "font ascent must be positive, is %g", a)
	}
	f.ascent = a
	return nil
}

// Descent is the baseline-relative position of the font's bottom. It is
// usually negative, but there are fonts with their lowest descender above
// the baseline.
func (f *Face) Descent() float32 {
	return f.descent
}

// SetDescent sets the descent.
func (f *Face) SetDescent(d float32) {
	f.descent = d
}

// Linegap is the additional space between two lines.
func (f *Face) Linegap() float32 {
	return f.linegap
}

// SetLinegap sets the additional space between two lines.
func (f *Face) SetLinegap(g float32) {
	f.linegap = g
}

// Size is ascent - descent.
func (f *Face) Size() float32 {
	return f.ascent - f.descent
}

// LineHeight is size + linegap, i.e. the baseline distance of two lines.
func (f *Face) LineHeight() float32 {
	return f.Size() + f.linegap
}

// SetLineHeight sets the baseline distance by adjusting the linegap.
func (f *Face) SetLineHeight(h float32) {
	f.linegap = h - f.Size()
}

// Linespace is the ratio of size to line height, or 0 for faces without
// a line height.
func (f *Face) Linespace() float32 {
	if f.LineHeight() == 0 {
		return 0
	}
	return f.Size() / f.LineHeight()
}

// SetLinespace sets the linegap as a multiple of the size.
func (f *Face) SetLinespace(spacing float32) {
	f.linegap = f.Size() * (spacing - 1)
}

// --- Atlas -----------------------------------------------------------------

// GlyphTextureExtent returns the size of the atlas in pixels.
func (f *Face) GlyphTextureExtent() (w, h int) {
	return f.texExt[0], f.texExt[1]
}

// InverseGlyphTextureExtent returns 1/width and 1/height of the atlas.
func (f *Face) InverseGlyphTextureExtent() f32.Vec2 {
	return f.texInv
}

// SetGlyphTextureExtent sets the size of the atlas. Both dimensions have to be
// positive. Placement vectors of all glyphs are re-derived.
func (f *Face) SetGlyphTextureExtent(w, h int) error {
	if w <= 0 || h <= 0 {
		return core.Error(core.EINVALID, "glyph texture extent must be positive, is %dx%d", w, h)
	}
	f.texExt = [2]int{w, h}
	f.texInv = f32.Vec2{1 / float32(w), 1 / float32(h)}
	f.rederive()
	return nil
}

// GlyphTexturePadding is the padding around every glyph in the atlas.
func (f *Face) GlyphTexturePadding() Padding {
	return f.padding
}

// SetGlyphTexturePadding sets the padding around glyphs. Components may not
// be negative. Placement vectors of all glyphs are re-derived.
func (f *Face) SetGlyphTexturePadding(p Padding) error {
	for _, v := range p {
		if v < 0 {
			return core.Error(core.EINVALID, "glyph texture padding may not be negative: %v", p)
		}
	}
	f.padding = p
	f.rederive()
	return nil
}

// GlyphTexture returns the handle of the atlas texture, if any.
func (f *Face) GlyphTexture() Texture {
	return f.texture
}

// SetGlyphTexture sets the handle of the atlas texture.
func (f *Face) SetGlyphTexture(t Texture) {
	f.texture = t
}

func (f *Face) rederive() {
	for _, g := range f.glyphs {
		g.derive(f.padding, f.texInv)
	}
}

// --- Glyphs ----------------------------------------------------------------

// Glyph looks up a glyph. The glyph returned must be treated as read-only.
func (f *Face) Glyph(i GlyphIndex) (*Glyph, bool) {
	g, ok := f.glyphs[i]
	return g, ok
}

// HasGlyph is true if the face contains a glyph for index i.
func (f *Face) HasGlyph(i GlyphIndex) bool {
	_, ok := f.glyphs[i]
	return ok
}

// Depictable is true if the face contains a depictable glyph for index i.
func (f *Face) Depictable(i GlyphIndex) bool {
	if g, ok := f.glyphs[i]; ok {
		return g.Depictable()
	}
	return false
}

// Upsert inserts a glyph or replaces the glyph with the same index. Kerning
// pairs of a replaced glyph are kept unless g brings its own.
func (f *Face) Upsert(g Glyph) {
	stored := g
	if len(g.kernings) > 0 {
		stored.kernings = make(map[GlyphIndex]float32, len(g.kernings))
		for k, v := range g.kernings {
			stored.kernings[k] = v
		}
	} else if old, ok := f.glyphs[g.index]; ok {
		stored.kernings = old.kernings
	}
	stored.derive(f.padding, f.texInv)
	f.glyphs[g.index] = &stored
}

// Glyphs returns the indices of all glyphs of the face in ascending order.
func (f *Face) Glyphs() []GlyphIndex {
	indices := make([]GlyphIndex, 0, len(f.glyphs))
	for i := range f.glyphs {
		indices = append(indices, i)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	return indices
}

// GlyphCount returns the number of glyphs in the face.
func (f *Face) GlyphCount() int {
	return len(f.glyphs)
}

// --- Kerning ---------------------------------------------------------------

// Kerning returns the horizontal adjustment between glyph a followed by
// glyph b. It is 0 for pairs without kerning information.
func (f *Face) Kerning(a, b GlyphIndex) float32 {
	if g, ok := f.glyphs[a]; ok {
		return g.Kerning(b)
	}
	return 0
}

// SetKerning sets the kerning for glyph first followed by glyph second.
// Glyph first has to be present in the face.
func (f *Face) SetKerning(first, second GlyphIndex, amount float32) error {
	g, ok := f.glyphs[first]
	if !ok {
		return core.WrapError(ErrNoSuchGlyph, core.EMISSING, "cannot kern glyph %d", first)
	}
	g.SetKerning(second, amount)
	return nil
}
