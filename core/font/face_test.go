package font

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyll/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f32"
)

func TestFaceMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyll.fonts")
	defer teardown()
	//
	f := NewFace()
	require.NoError(t, f.SetAscent(12))
	f.SetDescent(-4)
	assert.Equal(t, float32(16), f.Size())
	assert.Equal(t, float32(16), f.LineHeight())
	assert.Equal(t, float32(1), f.Linespace())
	f.SetLineHeight(20)
	assert.Equal(t, float32(4), f.Linegap())
	assert.Equal(t, float32(0.8), f.Linespace())
	f.SetLinespace(1.5)
	assert.Equal(t, float32(8), f.Linegap())
	err := f.SetAscent(0)
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, float32(12), f.Ascent())
}

func TestFaceEmptyLinespace(t *testing.T) {
	f := NewFace()
	assert.Equal(t, float32(0), f.Linespace())
}

func TestGlyphDepictable(t *testing.T) {
	g := NewGlyph('a')
	assert.False(t, g.Depictable())
	g.SetSubTextureExtent(f32.Vec2{0.1, 0})
	assert.False(t, g.Depictable())
	g.SetSubTextureExtent(f32.Vec2{0.1, 0.1})
	assert.True(t, g.Depictable())
	g.SetSubTextureExtent(f32.Vec2{})
	assert.False(t, g.Depictable())
}

func TestGlyphBearingFromOffsets(t *testing.T) {
	g := NewGlyph('x')
	g.SetBearingFromOffsets(10, 2, 3)
	assert.Equal(t, f32.Vec2{2, 7}, g.Bearing())
}

func TestDerivedVectors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyll.fonts")
	defer teardown()
	//
	f := NewFace()
	require.NoError(t, f.SetGlyphTextureExtent(100, 50))
	g := NewGlyph('A')
	g.SetBearing(f32.Vec2{1, 8})
	g.SetExtent(f32.Vec2{6, 10})
	g.SetSubTextureOrigin(f32.Vec2{0.5, 0.5})
	g.SetSubTextureExtent(f32.Vec2{0.06, 0.2})
	f.Upsert(g)
	stored, ok := f.Glyph('A')
	require.True(t, ok)
	assert.Equal(t, f32.Vec3{1, -2, 0}, stored.PenOrigin())
	assert.Equal(t, f32.Vec3{6, 0, 0}, stored.PenTangent())
	assert.Equal(t, f32.Vec3{0, 10, 0}, stored.PenBitangent())
	assert.InDelta(t, 0.56, stored.SubTextureRect()[2], 1e-6)
	assert.InDelta(t, 0.7, stored.SubTextureRect()[3], 1e-6)
	//
	require.NoError(t, f.SetGlyphTexturePadding(Padding{1, 2, 3, 4}))
	stored, _ = f.Glyph('A')
	assert.Equal(t, f32.Vec3{-3, -5, 0}, stored.PenOrigin())
	assert.Equal(t, f32.Vec3{12, 0, 0}, stored.PenTangent())
	assert.Equal(t, f32.Vec3{0, 14, 0}, stored.PenBitangent())
	r := stored.SubTextureRect()
	assert.InDelta(t, 0.5-4.0/100, r[0], 1e-6)
	assert.InDelta(t, 0.5-3.0/50, r[1], 1e-6)
	assert.InDelta(t, 0.56+2.0/100, r[2], 1e-6)
	assert.InDelta(t, 0.7+1.0/50, r[3], 1e-6)
}

func TestNegativePadding(t *testing.T) {
	f := NewFace()
	err := f.SetGlyphTexturePadding(Padding{0, -1, 0, 0})
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, Padding{}, f.GlyphTexturePadding())
}

func TestTextureExtentValidation(t *testing.T) {
	f := NewFace()
	assert.Error(t, f.SetGlyphTextureExtent(0, 10))
	require.NoError(t, f.SetGlyphTextureExtent(4, 8))
	w, h := f.GlyphTextureExtent()
	assert.Equal(t, 4, w)
	assert.Equal(t, 8, h)
	assert.Equal(t, f32.Vec2{0.25, 0.125}, f.InverseGlyphTextureExtent())
}

func TestUpsertKeepsKerning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyll.fonts")
	defer teardown()
	//
	f := NewFace()
	f.Upsert(NewGlyph('A'))
	f.Upsert(NewGlyph('V'))
	require.NoError(t, f.SetKerning('A', 'V', -2))
	assert.Equal(t, float32(-2), f.Kerning('A', 'V'))
	assert.Equal(t, float32(0), f.Kerning('V', 'A'))
	//
	g := NewGlyph('A')
	g.SetAdvance(7)
	f.Upsert(g)
	assert.Equal(t, float32(-2), f.Kerning('A', 'V'), "kerning must survive replacement")
	stored, _ := f.Glyph('A')
	assert.Equal(t, float32(7), stored.Advance())
	//
	g = NewGlyph('A')
	g.SetKerning('W', -1)
	f.Upsert(g)
	assert.Equal(t, float32(0), f.Kerning('A', 'V'))
	assert.Equal(t, float32(-1), f.Kerning('A', 'W'))
	assert.Equal(t, 2, f.GlyphCount())
}

func TestKerningMissingGlyph(t *testing.T) {
	f := NewFace()
	err := f.SetKerning('A', 'V', -2)
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.ErrorIs(t, err, ErrNoSuchGlyph)
	assert.Equal(t, float32(0), f.Kerning('A', 'V'))
}

func TestGlyphsSorted(t *testing.T) {
	f := NewFace()
	for _, r := range "zyxabc" {
		f.Upsert(NewGlyph(GlyphIndex(r)))
	}
	assert.Equal(t, []GlyphIndex{'a', 'b', 'c', 'x', 'y', 'z'}, f.Glyphs())
	assert.True(t, f.HasGlyph('x'))
	assert.False(t, f.HasGlyph('q'))
	assert.False(t, f.Depictable('x'))
}

func TestImageTextures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyll.fonts")
	defer teardown()
	//
	tex, err := ImageTextures{}.CreateTexture(2, 2, []byte{0, 1, 2, 3}, AtlasParams)
	require.NoError(t, err)
	w, h := tex.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
	img := tex.(*ImageTexture).Image()
	assert.Equal(t, uint8(3), img.GrayAt(1, 1).Y)
	assert.Equal(t, Linear, tex.(*ImageTexture).Params().MagFilter)
	//
	_, err = ImageTextures{}.CreateTexture(2, 2, []byte{0, 1, 2}, AtlasParams)
	assert.Equal(t, core.EINVALID, core.Code(err))
}
