package font

import (
	"image"

	"github.com/npillmayer/tyll/core"
)

// Texture is an opaque handle to a glyph atlas living with a rendering
// collaborator (usually on a GPU).
type Texture interface {
	Size() (w, h int)
}

// Filter is a texture sampling filter.
type Filter int

// Sampling filters.
const (
	Nearest Filter = iota
	Linear
)

// Wrap is a texture wrapping mode.
type Wrap int

// Wrapping modes.
const (
	ClampToEdge Wrap = iota
	Repeat
)

// TextureParams are the sampling parameters requested for an atlas texture.
type TextureParams struct {
	MinFilter, MagFilter Filter
	WrapS, WrapT         Wrap
}

// AtlasParams are the parameters loaders request for glyph atlases:
// linear filtering and clamp-to-edge wrapping.
var AtlasParams = TextureParams{
	MinFilter: Linear,
	MagFilter: Linear,
	WrapS:     ClampToEdge,
	WrapT:     ClampToEdge,
}

// TextureFactory is implemented by rendering collaborators which allocate
// single-channel 2D textures. Pixels are given row by row, top row first,
// one byte per pixel.
type TextureFactory interface {
	CreateTexture(w, h int, pixels []byte, params TextureParams) (Texture, error)
}

// --- In-memory textures ----------------------------------------------------

// ImageTexture is a texture held in CPU memory as a grayscale image.
type ImageTexture struct {
	img    *image.Gray
	params TextureParams
}

// Size returns the extent of the texture in pixels.
func (t *ImageTexture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the texture's pixels. Clients must not modify them.
func (t *ImageTexture) Image() *image.Gray {
	return t.img
}

// Params returns the sampling parameters the texture has been created with.
func (t *ImageTexture) Params() TextureParams {
	return t.params
}

// ImageTextures is a TextureFactory creating ImageTextures. It is used if no
// rendering collaborator is present, e.g. for measuring text only, and by
// software rendering.
type ImageTextures struct{}

// CreateTexture copies pixels into a new ImageTexture.
func (ImageTextures) CreateTexture(w, h int, pixels []byte, params TextureParams) (Texture, error) {
	if w <= 0 || h <= 0 || len(pixels) != w*h {
		return nil, core.Error(core.EINVALID, "cannot create %dx%d texture from %d bytes", w, h, len(pixels))
	}
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, pixels)
	tracer().Debugf("created in-memory texture of %dx%d", w, h)
	return &ImageTexture{img: img, params: params}, nil
}

var _ TextureFactory = ImageTextures{}
