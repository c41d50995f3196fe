package font

import (
	"os"
	"sync"

	"github.com/npillmayer/tyll/core"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// ScalableFont is an OpenType or TrueType font, from which bitmap faces may be
// baked at a given size.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// LoadOpenTypeFont loads a scalable font from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses the binary data of a scalable font.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// Bake renders the glyphs for runes at a font size into a bitmap face
// (see FromXFace). If runes is empty, printable ASCII is baked.
func (sf *ScalableFont) Bake(fontsize float32, runes []rune, tex TextureFactory) (*Face, error) {
	if fontsize < 5 || fontsize > 500 {
		tracer().Errorf("font size must be 5pt < size < 500pt, is %g (set to 16pt)", fontsize)
		fontsize = 16
	}
	options := &opentype.FaceOptions{
		Size: float64(fontsize),
		DPI:  72,
	}
	xface, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot prepare font %s at %gpt", sf.Fontname, fontsize)
	}
	defer xface.Close()
	f, err := FromXFace(xface, sf.Fontname, runes, tex)
	if err == nil {
		f.NominalSize = fontsize
	}
	return f, err
}

// GoSans returns the Go Sans font, which is always present.
func GoSans() *ScalableFont {
	goSansLoading.Do(func() {
		var err error
		goSans, err = ParseOpenTypeFont(goregular.TTF)
		if err != nil {
			panic("cannot load Go Sans") // this cannot happen
		}
		goSans.Filepath = "internal"
	})
	return goSans
}

var goSansLoading sync.Once

var goSans *ScalableFont
