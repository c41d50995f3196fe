package raster

import (
	"bytes"
	"image"
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyll/core"
	"github.com/npillmayer/tyll/core/font"
	"github.com/npillmayer/tyll/engine/glyphcloud"
	"github.com/npillmayer/tyll/engine/label"
	"github.com/npillmayer/tyll/engine/typesetter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f32"
)

// blockFace has a single glyph 'a', a solid 4×4 block sitting on the
// baseline, covering the whole atlas.
func blockFace(t *testing.T, textures font.TextureFactory) *font.Face {
	f := font.NewFace()
	require.NoError(t, f.SetAscent(4))
	require.NoError(t, f.SetGlyphTextureExtent(4, 4))
	tex, err := textures.CreateTexture(4, 4, bytes.Repeat([]byte{0xff}, 16), font.AtlasParams)
	require.NoError(t, err)
	f.SetGlyphTexture(tex)
	g := font.NewGlyph('a')
	g.SetSubTextureExtent(f32.Vec2{1, 1})
	g.SetExtent(f32.Vec2{4, 4})
	g.SetBearing(f32.Vec2{0, 4})
	g.SetAdvance(5)
	f.Upsert(g)
	return f
}

func TestTransforms(t *testing.T) {
	m := NDCToPixel(200, 100)
	apply := func(x, y float64) [2]float64 {
		return [2]float64{m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]}
	}
	assert.Equal(t, [2]float64{0, 0}, apply(-1, 1))
	assert.Equal(t, [2]float64{200, 100}, apply(1, -1))
	assert.Equal(t, [2]float64{100, 50}, apply(0, 0))
	m = mulAff3(PixelOrigin(5, 15), PixelOrigin(1, 1))
	assert.Equal(t, [2]float64{7, 14}, apply(1, 0))
}

func TestRenderBlock(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	r := NewRenderer()
	face := blockFace(t, r)
	l := label.NewWithText("aa", face)
	l.SetTextColor(f32.Vec4{1, 0, 0, 1})
	cloud := glyphcloud.New(r)
	_, err := typesetter.Typeset(cloud, l, false)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Uploads())
	require.Len(t, r.Vertices(), 2)
	//
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	require.NoError(t, r.Render(dst, PixelOrigin(5, 15)))
	for _, p := range []image.Point{{6, 12}, {7, 13}, {11, 13}, {13, 14}} {
		c := dst.RGBAAt(p.X, p.Y)
		assert.InDelta(t, 0xff, c.R, 2, "pixel %v", p)
		assert.InDelta(t, 0xff, c.A, 2, "pixel %v", p)
		assert.Equal(t, uint8(0), c.G, "pixel %v", p)
	}
	for _, p := range []image.Point{{1, 1}, {7, 9}, {7, 17}, {9, 13}, {15, 13}} {
		assert.Equal(t, uint8(0), dst.RGBAAt(p.X, p.Y).A, "pixel %v should be empty", p)
	}
	//
	other := image.NewRGBA(image.Rect(0, 0, 20, 20))
	require.NoError(t, Render(other, cloud, PixelOrigin(5, 15)))
	assert.Equal(t, dst.Pix, other.Pix)
}

type foreignTexture struct{}

func (foreignTexture) Size() (int, int) { return 1, 1 }

func TestRenderPreconditions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyll.raster")
	defer teardown()
	//
	r := NewRenderer()
	err := r.Upload(nil, foreignTexture{})
	assert.Equal(t, core.EINVALID, core.Code(err))
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	assert.NoError(t, r.Render(dst, PixelOrigin(0, 0)), "nothing to render")
	err = drawVertices(dst, []glyphcloud.Vertex{{}}, nil, PixelOrigin(0, 0))
	assert.Equal(t, core.EPRECONDITION, core.Code(err))
	assert.Equal(t, core.EPRECONDITION, core.Code(Render(dst, nil, PixelOrigin(0, 0))))
}
