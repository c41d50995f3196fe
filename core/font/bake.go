package font

import (
	"image"
	"sync"

	"github.com/npillmayer/tyll/core"
	"golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/math/fixed"
)

// minimum width of baked atlases, in pixels
const bakeAtlasWidth = 256

// gap between glyphs in baked atlases, in pixels
const bakeGap = 1

// kerning pairs are only queried for rune sets up to this size
const bakeMaxKerningRunes = 512

type bakedGlyph struct {
	r       rune
	dr      image.Rectangle // glyph box relative to the dot on the baseline
	mask    image.Image
	maskp   image.Point
	advance fixed.Int26_6
	at      image.Point // position in atlas
	visible bool
}

// FromXFace bakes the glyphs for runes of an x/image font face into a bitmap
// font. If runes is empty, printable ASCII is baked. If tex is nil, an
// in-memory texture is created.
//
// Glyphs are packed into shelves of an atlas, each surrounded by a gap of one
// pixel. Glyphs without any visible pixel (e.g., spaces) are not depictable and
// occupy no atlas space.
func FromXFace(face xfont.Face, name string, runes []rune, tex TextureFactory) (*Face, error) {
	if face == nil {
		return nil, core.Error(core.EINVALID, "cannot bake font from nil face")
	}
	if len(runes) == 0 {
		runes = printableASCII()
	}
	if tex == nil {
		tex = ImageTextures{}
	}
	metrics := face.Metrics()
	f := NewFace()
	f.Name = name
	f.NominalSize = float32(metrics.Height) / 64
	if err := f.SetAscent(float32(metrics.Ascent) / 64); err != nil {
		return nil, err
	}
	f.SetDescent(-float32(metrics.Descent) / 64)
	f.SetLineHeight(float32(metrics.Height) / 64)
	//
	glyphs, w, h := packGlyphs(face, runes)
	atlas := image.NewGray(image.Rect(0, 0, w, h))
	for _, bg := range glyphs {
		if !bg.visible {
			continue
		}
		r := image.Rectangle{Min: bg.at, Max: bg.at.Add(bg.dr.Size())}
		draw.DrawMask(atlas, r, image.White, image.Point{}, bg.mask, bg.maskp, draw.Over)
	}
	if err := f.SetGlyphTextureExtent(w, h); err != nil {
		return nil, err
	}
	texture, err := tex.CreateTexture(w, h, atlas.Pix, AtlasParams)
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot create atlas texture for %s", name)
	}
	f.SetGlyphTexture(texture)
	//
	inv := f.InverseGlyphTextureExtent()
	for _, bg := range glyphs {
		g := NewGlyph(GlyphIndex(bg.r))
		g.SetAdvance(float32(bg.advance) / 64)
		if bg.visible {
			size := bg.dr.Size()
			g.SetExtent(f32.Vec2{float32(size.X), float32(size.Y)})
			g.SetBearing(f32.Vec2{float32(bg.dr.Min.X), float32(-bg.dr.Min.Y)})
			g.SetSubTextureOrigin(f32.Vec2{
				float32(bg.at.X) * inv[0],
				1 - float32(bg.at.Y+size.Y)*inv[1],
			})
			g.SetSubTextureExtent(f32.Vec2{float32(size.X) * inv[0], float32(size.Y) * inv[1]})
		}
		f.Upsert(g)
	}
	if len(glyphs) <= bakeMaxKerningRunes {
		for _, a := range glyphs {
			for _, b := range glyphs {
				if k := face.Kern(a.r, b.r); k != 0 {
					_ = f.SetKerning(GlyphIndex(a.r), GlyphIndex(b.r), float32(k)/64)
				}
			}
		}
	}
	tracer().Infof("baked font %s with %d glyphs into %dx%d atlas", name, len(glyphs), w, h)
	return f, nil
}

// packGlyphs collects the glyphs of face for runes and assigns atlas positions
// in shelves. It returns the glyphs and the atlas extent.
func packGlyphs(face xfont.Face, runes []rune) ([]bakedGlyph, int, int) {
	seen := make(map[rune]bool, len(runes))
	glyphs := make([]bakedGlyph, 0, len(runes))
	atlasW := bakeAtlasWidth
	for _, r := range runes {
		if seen[r] {
			continue
		}
		seen[r] = true
		dr, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			tracer().Debugf("face has no glyph for %#U", r)
			continue
		}
		bg := bakedGlyph{r: r, dr: dr, mask: mask, maskp: maskp, advance: adv}
		bg.visible = !dr.Empty() && hasInk(mask, maskp, dr.Size())
		if bg.visible && dr.Dx()+2*bakeGap > atlasW {
			atlasW = dr.Dx() + 2*bakeGap
		}
		glyphs = append(glyphs, bg)
	}
	x, y, shelf := bakeGap, bakeGap, 0
	for i := range glyphs {
		if !glyphs[i].visible {
			continue
		}
		size := glyphs[i].dr.Size()
		if x+size.X+bakeGap > atlasW {
			x, y = bakeGap, y+shelf+bakeGap
			shelf = 0
		}
		glyphs[i].at = image.Pt(x, y)
		x += size.X + bakeGap
		if size.Y > shelf {
			shelf = size.Y
		}
	}
	return glyphs, atlasW, y + shelf + bakeGap
}

func hasInk(mask image.Image, at image.Point, size image.Point) bool {
	if mask == nil {
		return false
	}
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			if _, _, _, a := mask.At(at.X+x, at.Y+y).RGBA(); a > 0 {
				return true
			}
		}
	}
	return false
}

func printableASCII() []rune {
	runes := make([]rune, 0, 0x7f-0x20)
	for r := rune(0x20); r < 0x7f; r++ {
		runes = append(runes, r)
	}
	return runes
}

// --- Fallback font ---------------------------------------------------------

// FallbackFace returns a face to be used if everything else fails. It is
// always present and covers printable ASCII. Currently it is baked from the
// 7×13 fixed font of package basicfont.
func FallbackFace() *Face {
	fallbackFaceBaking.Do(func() {
		var err error
		fallbackFace, err = FromXFace(basicfont.Face7x13, "basicfont-7x13", nil, ImageTextures{})
		if err != nil {
			panic("cannot bake fallback font") // this cannot happen
		}
	})
	return fallbackFace
}

var fallbackFaceBaking sync.Once

var fallbackFace *Face
