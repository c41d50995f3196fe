package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/npillmayer/tyll/core"
	"github.com/npillmayer/tyll/core/font"
	"github.com/npillmayer/tyll/engine/glyphcloud"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Renderer keeps a copy of the vertices uploaded by a cloud and renders
// them on demand. It creates in-memory atlas textures for font loaders.
type Renderer struct {
	font.ImageTextures
	vertices []glyphcloud.Vertex
	atlas    *font.ImageTexture
	uploads  int
}

var _ glyphcloud.Uploader = &Renderer{}
var _ font.TextureFactory = &Renderer{}

// NewRenderer creates a renderer without any vertices.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Upload copies vertices. texture has to be created by a Renderer or by
// font.ImageTextures.
func (r *Renderer) Upload(vertices []glyphcloud.Vertex, texture font.Texture) error {
	atlas, err := imageTexture(texture)
	if err != nil {
		return err
	}
	r.vertices = append(r.vertices[:0], vertices...)
	r.atlas = atlas
	r.uploads++
	tracer().Debugf("upload of %d vertices", len(vertices))
	return nil
}

// Uploads is the number of uploads received.
func (r *Renderer) Uploads() int {
	return r.uploads
}

// Vertices returns the vertices of the last upload.
func (r *Renderer) Vertices() []glyphcloud.Vertex {
	return r.vertices
}

// Render draws the vertices of the last upload onto dst. toPixel maps the
// (x, y)-plane of vertex space to pixel coordinates of dst.
func (r *Renderer) Render(dst xdraw.Image, toPixel f64.Aff3) error {
	return drawVertices(dst, r.vertices, r.atlas, toPixel)
}

// Render draws the vertices of a cloud onto dst. toPixel maps the
// (x, y)-plane of vertex space to pixel coordinates of dst.
func Render(dst xdraw.Image, cloud *glyphcloud.Cloud, toPixel f64.Aff3) error {
	if cloud == nil {
		return core.Error(core.EPRECONDITION, "cannot render without a cloud")
	}
	atlas, err := imageTexture(cloud.Texture())
	if err != nil {
		return err
	}
	return drawVertices(dst, cloud.Vertices(), atlas, toPixel)
}

// NDCToPixel maps normalized device coordinates to the pixels of a w×h
// viewport, with y pointing down.
func NDCToPixel(w, h int) f64.Aff3 {
	hw, hh := float64(w)/2, float64(h)/2
	return f64.Aff3{
		hw, 0, hw,
		0, -hh, hh,
	}
}

// PixelOrigin places the origin of vertex space at pixel (x, y), with vertex
// y pointing up.
func PixelOrigin(x, y float64) f64.Aff3 {
	return f64.Aff3{
		1, 0, x,
		0, -1, y,
	}
}

func imageTexture(t font.Texture) (*font.ImageTexture, error) {
	if t == nil {
		return nil, nil
	}
	atlas, ok := t.(*font.ImageTexture)
	if !ok {
		return nil, core.Error(core.EINVALID, "cannot render from texture of type %T", t)
	}
	return atlas, nil
}

func drawVertices(dst xdraw.Image, vertices []glyphcloud.Vertex, atlas *font.ImageTexture, toPixel f64.Aff3) error {
	if len(vertices) == 0 {
		return nil
	}
	if atlas == nil {
		return core.Error(core.EPRECONDITION, "cannot render %d vertices without atlas", len(vertices))
	}
	gray := atlas.Image()
	// the atlas holds coverage values, which is what a mask needs
	mask := &image.Alpha{Pix: gray.Pix, Stride: gray.Stride, Rect: gray.Rect}
	w, h := float64(gray.Rect.Dx()), float64(gray.Rect.Dy())
	var scratch *image.Alpha
	drawn := 0
	for _, v := range vertices {
		sr := image.Rect(
			int(math.Round(float64(v.UVRect[0])*w)),
			int(math.Round((1-float64(v.UVRect[3]))*h)),
			int(math.Round(float64(v.UVRect[2])*w)),
			int(math.Round((1-float64(v.UVRect[1]))*h)),
		).Intersect(gray.Rect)
		if sr.Empty() {
			continue
		}
		s2d, ok := quadTransform(v, sr)
		if !ok {
			continue
		}
		s2d = mulAff3(toPixel, s2d)
		r := transformedBounds(s2d, sr).Intersect(dst.Bounds())
		if r.Empty() {
			continue
		}
		scratch = clearedAlpha(scratch, r)
		xdraw.BiLinear.Transform(scratch, s2d, mask, sr, xdraw.Src, nil)
		xdraw.DrawMask(dst, r, image.NewUniform(vertexColor(v)), image.Point{}, scratch, r.Min, xdraw.Over)
		drawn++
	}
	tracer().Debugf("rendered %d of %d vertices", drawn, len(vertices))
	return nil
}

// quadTransform maps the atlas rectangle sr onto the quad of v. The top row
// of sr is mapped to the upper edge of the quad.
func quadTransform(v glyphcloud.Vertex, sr image.Rectangle) (f64.Aff3, bool) {
	o, t, b := v.Origin, v.Tangent, v.Bitangent
	if float64(t[0])*float64(b[1])-float64(t[1])*float64(b[0]) == 0 {
		return f64.Aff3{}, false
	}
	sw, sh := float64(sr.Dx()), float64(sr.Dy())
	x0, y1 := float64(sr.Min.X), float64(sr.Max.Y)
	tx, ty := float64(t[0])/sw, float64(t[1])/sw
	bx, by := float64(b[0])/sh, float64(b[1])/sh
	return f64.Aff3{
		tx, -bx, float64(o[0]) - tx*x0 + bx*y1,
		ty, -by, float64(o[1]) - ty*x0 + by*y1,
	}, true
}

// mulAff3 returns the transform applying b first, then a.
func mulAff3(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

func transformedBounds(m f64.Aff3, r image.Rectangle) image.Rectangle {
	minx, miny := math.Inf(1), math.Inf(1)
	maxx, maxy := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{
		{float64(r.Min.X), float64(r.Min.Y)},
		{float64(r.Max.X), float64(r.Min.Y)},
		{float64(r.Min.X), float64(r.Max.Y)},
		{float64(r.Max.X), float64(r.Max.Y)},
	} {
		x := m[0]*p[0] + m[1]*p[1] + m[2]
		y := m[3]*p[0] + m[4]*p[1] + m[5]
		minx, maxx = math.Min(minx, x), math.Max(maxx, x)
		miny, maxy = math.Min(miny, y), math.Max(maxy, y)
	}
	return image.Rect(int(math.Floor(minx)), int(math.Floor(miny)), int(math.Ceil(maxx)), int(math.Ceil(maxy)))
}

// clearedAlpha returns a transparent mask with bounds r, re-using the pixels
// of scratch if possible.
func clearedAlpha(scratch *image.Alpha, r image.Rectangle) *image.Alpha {
	n := r.Dx() * r.Dy()
	if scratch == nil || cap(scratch.Pix) < n {
		return image.NewAlpha(r)
	}
	pix := scratch.Pix[:n]
	for i := range pix {
		pix[i] = 0
	}
	return &image.Alpha{Pix: pix, Stride: r.Dx(), Rect: r}
}

func vertexColor(v glyphcloud.Vertex) color.NRGBA {
	c := func(f float32) uint8 {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 0xff
		}
		return uint8(f*0xff + 0.5)
	}
	return color.NRGBA{R: c(v.Color[0]), G: c(v.Color[1]), B: c(v.Color[2]), A: c(v.Color[3])}
}
