package fntload

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/tyll/core"
	"github.com/npillmayer/tyll/core/font"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f32"
)

const testDescription = `info face="Test Sans" size=20 bold=0 italic=0 charset="" unicode=1 padding=1,2,3,4 spacing=0,0
common lineHeight=24 base=16 scaleW=8 scaleH=4 pages=1 packed=0
page id=0 file="atlas/test.raw"
chars count=3
char id=65 x=0 y=0 width=4 height=2 xoffset=1 yoffset=4 xadvance=5 page=0 chnl=0
char id=86 x=4 y=0 width=4 height=2 xoffset=0 yoffset=4 xadvance=5 page=0 chnl=0
char id=32 x=0 y=0 width=0 height=0 xoffset=0 yoffset=0 xadvance=3 page=0 chnl=0
char id=66 x=0 y=2 width=4
kernings count=1
kerning first=65 second=86 amount=-1.5
`

func testFS(description string) fstest.MapFS {
	return fstest.MapFS{
		"fonts/test.fnt":       {Data: []byte(description)},
		"fonts/atlas/test.raw": {Data: make([]byte, 8*4)},
	}
}

func TestLoadFS(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	face, err := Loader{}.LoadFS(testFS(testDescription), "fonts/test.fnt")
	require.NoError(t, err)
	assert.Equal(t, "Test Sans", face.Name)
	assert.Equal(t, float32(20), face.NominalSize)
	assert.Equal(t, float32(16), face.Ascent())
	assert.Equal(t, float32(-4), face.Descent())
	assert.Equal(t, float32(24), face.LineHeight())
	w, h := face.GlyphTextureExtent()
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)
	assert.Equal(t, font.Padding{3, 2, 4, 1}, face.GlyphTexturePadding())
	require.NotNil(t, face.GlyphTexture())
	assert.Equal(t, font.AtlasParams, face.GlyphTexture().(*font.ImageTexture).Params())
	//
	assert.Equal(t, 3, face.GlyphCount(), "malformed char record must be skipped")
	a, ok := face.Glyph('A')
	require.True(t, ok)
	assert.Equal(t, f32.Vec2{0, 0.5}, a.SubTextureOrigin())
	assert.Equal(t, f32.Vec2{0.5, 0.5}, a.SubTextureExtent())
	assert.Equal(t, f32.Vec2{1, 12}, a.Bearing())
	assert.Equal(t, float32(5), a.Advance())
	assert.True(t, a.Depictable())
	assert.False(t, face.Depictable(' '))
	assert.Equal(t, float32(-1.5), face.Kerning('A', 'V'))
	assert.Equal(t, float32(0), face.Kerning('V', 'A'))
}

func TestLoadMissingFile(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	face, err := Loader{}.LoadFS(fstest.MapFS{}, "nope.fnt")
	assert.Nil(t, face)
	assert.Equal(t, core.EMISSING, core.Code(err))
	//
	face, err = Load("/this/path/does/not/exist.fnt")
	assert.Nil(t, face)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestLoadEmptyFile(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	fsys := fstest.MapFS{"empty.fnt": {Data: []byte("\n  \n")}}
	_, err := Loader{}.LoadFS(fsys, "empty.fnt")
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestLoadWithoutPage(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	fsys := fstest.MapFS{"nopage.fnt": {Data: []byte(
		"info size=20 padding=0,0,0,0\ncommon lineHeight=24 base=16 scaleW=8 scaleH=4\n")}}
	face, err := Loader{}.LoadFS(fsys, "nopage.fnt")
	assert.Nil(t, face)
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.ErrorIs(t, err, ErrNoTexture)
}

func TestLoadRawSizeMismatch(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	fsys := testFS(testDescription)
	fsys["fonts/atlas/test.raw"] = &fstest.MapFile{Data: make([]byte, 31)}
	face, err := Loader{}.LoadFS(fsys, "fonts/test.fnt")
	assert.Nil(t, face)
	assert.ErrorIs(t, err, ErrNoTexture)
}

func TestLoadPNGPage(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	img.Set(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	fsys := fstest.MapFS{
		"f.fnt": {Data: []byte("info size=20\ncommon lineHeight=24 base=16 scaleW=8 scaleH=4\npage id=0 file=f.png\n")},
		"f.png": {Data: buf.Bytes()},
	}
	face, err := Loader{}.LoadFS(fsys, "f.fnt")
	require.NoError(t, err)
	gray := face.GlyphTexture().(*font.ImageTexture).Image()
	assert.Equal(t, uint8(255), gray.GrayAt(1, 0).Y)
	assert.Equal(t, uint8(0), gray.GrayAt(0, 0).Y)
	assert.Equal(t, "f", face.Name)
}

func TestLoadRawOnly(t *testing.T) {
	teardown := testconfig.QuickConfig(t, map[string]string{
		"atlas-raw-only": "true",
	})
	defer teardown()
	//
	fsys := fstest.MapFS{
		"f.fnt": {Data: []byte("info size=20\ncommon lineHeight=24 base=16 scaleW=8 scaleH=4\npage id=0 file=f.png\n")},
		"f.png": {Data: []byte("not decoded anyway")},
	}
	_, err := Loader{}.LoadFS(fsys, "f.fnt")
	assert.ErrorIs(t, err, ErrNoTexture)
}

type countingTextures struct {
	count int
}

func (c *countingTextures) CreateTexture(w, h int, pixels []byte, params font.TextureParams) (font.Texture, error) {
	c.count++
	return font.ImageTextures{}.CreateTexture(w, h, pixels, params)
}

func TestLoaderUsesFactory(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	factory := &countingTextures{}
	desc := testDescription + "page id=1 file=\"atlas/other.raw\"\n"
	_, err := Loader{Textures: factory}.LoadFS(testFS(desc), "fonts/test.fnt")
	require.NoError(t, err)
	assert.Equal(t, 1, factory.count, "only the first page is used")
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("info face=\"Gill Sans\" size=12\r")
	assert.Equal(t, []string{"info", "face=Gill Sans", "size=12"}, tokens)
	assert.Empty(t, tokenize("   "))
}

func TestDecodeLatin1Name(t *testing.T) {
	assert.Equal(t, "Süd", decodeName("S\xfcd"))
	assert.Equal(t, "Süd", decodeName("Süd"))
}
