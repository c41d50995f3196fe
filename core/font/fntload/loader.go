package fntload

import (
	"bufio"
	"bytes"
	"errors"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/tyll/core"
	"github.com/npillmayer/tyll/core/font"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/tiff"
	"golang.org/x/text/encoding/charmap"
)

// ErrNoTexture is returned if a font description does not reference a
// usable atlas page.
var ErrNoTexture = errors.New("font description has no usable texture page")

// Loader loads font descriptions. Textures is the factory atlas pages are
// handed to; if it is nil, in-memory textures are created.
type Loader struct {
	Textures font.TextureFactory
}

// Load loads a font description from a file, using in-memory textures.
func Load(filename string) (*font.Face, error) {
	return Loader{}.Load(filename)
}

// Load loads a font description from a file. Atlas pages are looked up
// relative to the description's directory.
func (l Loader) Load(filename string) (*font.Face, error) {
	dir, name := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}
	return l.LoadFS(os.DirFS(dir), name)
}

// LoadFS loads a font description from a file system. Atlas pages are looked
// up relative to the description's directory within fsys.
//
// If the description cannot be read, or is empty, an error with code
// core.EMISSING is returned. If it does not reference a valid atlas page,
// an error with code core.EINVALID is returned.
func (l Loader) LoadFS(fsys fs.FS, name string) (*font.Face, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font description %s", name)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, core.Error(core.EMISSING, "font description %s is empty", name)
	}
	p := &parser{
		face:     font.NewFace(),
		fsys:     fsys,
		dir:      path.Dir(name),
		textures: l.Textures,
		rawOnly:  configuredRawOnly(),
	}
	if p.textures == nil {
		p.textures = font.ImageTextures{}
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		p.lineno++
		p.parseLine(scanner.Text())
	}
	if err = scanner.Err(); err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font description %s", name)
	}
	if p.face.GlyphTexture() == nil {
		return nil, core.WrapError(ErrNoTexture, core.EINVALID, "cannot load font %s", name)
	}
	if p.face.Name == "" {
		p.face.Name = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}
	tracer().Infof("loaded font %s from %s", p.face, name)
	return p.face, nil
}

func configuredRawOnly() bool {
	rawOnly, err := strconv.ParseBool(gconf.GetString("atlas-raw-only"))
	return err == nil && rawOnly
}

// --- Parser ----------------------------------------------------------------

type parser struct {
	face     *font.Face
	fsys     fs.FS
	dir      string
	textures font.TextureFactory
	rawOnly  bool
	lineno   int
	size     float32      // from info
	padding  font.Padding // from info, applied with common
	common   bool         // common record seen
	page     bool         // page loaded
}

// record is a tagged line of key-value pairs.
type record struct {
	tag    string
	pairs  map[string]string
	lineno int
}

func (p *parser) parseLine(line string) {
	tokens := tokenize(line)
	if len(tokens) == 0 {
		return
	}
	rec := record{tag: tokens[0], pairs: make(map[string]string, len(tokens)-1), lineno: p.lineno}
	for _, tok := range tokens[1:] {
		if k, v, ok := strings.Cut(tok, "="); ok {
			rec.pairs[k] = v
		}
	}
	var err error
	switch rec.tag {
	case "info":
		err = p.parseInfo(rec)
	case "common":
		err = p.parseCommon(rec)
	case "page":
		err = p.parsePage(rec)
	case "char":
		err = p.parseChar(rec)
	case "kerning":
		err = p.parseKerning(rec)
	default:
		return
	}
	if err != nil {
		tracer().Errorf("font description line %d: skipping %s record: %v", rec.lineno, rec.tag, err)
	}
}

// tokenize splits a line at blanks outside of quotes. Quotes and carriage
// returns are dropped. Bytes are kept as they are, as face names may be
// encoded in ISO-8859-1.
func tokenize(line string) []string {
	var tokens []string
	var tok []byte
	quoted, intoken := false, false
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '"':
			quoted = !quoted
			intoken = true
		case c == '\r':
		case (c == ' ' || c == '\t') && !quoted:
			if intoken {
				tokens = append(tokens, string(tok))
				tok, intoken = tok[:0], false
			}
		default:
			tok = append(tok, c)
			intoken = true
		}
	}
	if intoken {
		tokens = append(tokens, string(tok))
	}
	return tokens
}

func (r record) value(key string) (string, error) {
	v, ok := r.pairs[key]
	if !ok {
		return "", core.Error(core.EINVALID, "missing key %q", key)
	}
	return v, nil
}

func (r record) floats(keys ...string) ([]float32, error) {
	values := make([]float32, len(keys))
	for i, key := range keys {
		v, err := r.value(key)
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "value of key %q is not a number", key)
		}
		values[i] = float32(f)
	}
	return values, nil
}

func (r record) ints(keys ...string) ([]int, error) {
	values := make([]int, len(keys))
	for i, key := range keys {
		v, err := r.value(key)
		if err != nil {
			return nil, err
		}
		if values[i], err = strconv.Atoi(v); err != nil {
			return nil, core.WrapError(err, core.EINVALID, "value of key %q is not an integer", key)
		}
	}
	return values, nil
}

func (p *parser) parseInfo(rec record) error {
	v, err := rec.floats("size")
	if err != nil {
		return err
	}
	p.size = v[0]
	p.face.NominalSize = p.size
	if name, ok := rec.pairs["face"]; ok {
		p.face.Name = decodeName(name)
	}
	if padding, ok := rec.pairs["padding"]; ok {
		values := strings.Split(padding, ",")
		if len(values) != 4 {
			return core.Error(core.EINVALID, "padding needs 4 components, has %d", len(values))
		}
		var pad [4]float32
		for i, s := range values {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
			if err != nil {
				return core.WrapError(err, core.EINVALID, "padding component is not a number")
			}
			pad[i] = float32(f)
		}
		// reordered from file order
		p.padding[font.Top] = pad[2]
		p.padding[font.Right] = pad[1]
		p.padding[font.Bottom] = pad[3]
		p.padding[font.Left] = pad[0]
	}
	tracer().Debugf("font info: size=%g, padding=%v", p.size, p.padding)
	return nil
}

// decodeName interprets a face name as ISO-8859-1 if it is not valid UTF-8.
func decodeName(name string) string {
	if utf8.ValidString(name) {
		return name
	}
	if decoded, err := charmap.ISO8859_1.NewDecoder().String(name); err == nil {
		return decoded
	}
	return strings.ToValidUTF8(name, "?")
}

func (p *parser) parseCommon(rec record) error {
	v, err := rec.floats("lineHeight", "base")
	if err != nil {
		return err
	}
	scale, err := rec.ints("scaleW", "scaleH")
	if err != nil {
		return err
	}
	if err = p.face.SetAscent(v[1]); err != nil {
		return err
	}
	p.face.SetDescent(p.face.Ascent() - p.size)
	p.face.SetLineHeight(v[0])
	if err = p.face.SetGlyphTextureExtent(scale[0], scale[1]); err != nil {
		return err
	}
	if err = p.face.SetGlyphTexturePadding(p.padding); err != nil {
		return err
	}
	p.common = true
	tracer().Debugf("font common: ascent=%g, descent=%g, line height=%g, atlas=%dx%d",
		p.face.Ascent(), p.face.Descent(), p.face.LineHeight(), scale[0], scale[1])
	return nil
}

func (p *parser) parsePage(rec record) error {
	file, err := rec.value("file")
	if err != nil {
		return err
	}
	if p.page {
		tracer().Infof("font description references more than one page, ignoring %s", file)
		return nil
	}
	if !p.common {
		return core.Error(core.EPRECONDITION, "page %s precedes common record", file)
	}
	w, h := p.face.GlyphTextureExtent()
	pagepath := path.Join(p.dir, file)
	var pixels []byte
	switch ext := strings.ToLower(path.Ext(file)); ext {
	case ".raw":
		if pixels, err = fs.ReadFile(p.fsys, pagepath); err != nil {
			return core.WrapError(err, core.EMISSING, "cannot read atlas page %s", pagepath)
		}
		if len(pixels) != w*h {
			return core.Error(core.EINVALID, "atlas page %s has %d bytes, expected %dx%d",
				pagepath, len(pixels), w, h)
		}
	case ".png", ".bmp", ".tif", ".tiff":
		if p.rawOnly {
			return core.Error(core.EINVALID, "atlas page %s is not raw, but atlas-raw-only is set", pagepath)
		}
		if pixels, err = p.decodePage(pagepath, ext, w, h); err != nil {
			return err
		}
	default:
		return core.Error(core.EINVALID, "unsupported atlas page format %s", pagepath)
	}
	tex, err := p.textures.CreateTexture(w, h, pixels, font.AtlasParams)
	if err != nil {
		return err
	}
	p.face.SetGlyphTexture(tex)
	p.page = true
	tracer().Debugf("font atlas page %s loaded", pagepath)
	return nil
}

// decodePage decodes an image page and reduces it to a single channel of
// premultiplied luminance.
func (p *parser) decodePage(pagepath, ext string, w, h int) ([]byte, error) {
	f, err := p.fsys.Open(pagepath)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open atlas page %s", pagepath)
	}
	defer f.Close()
	var img image.Image
	switch ext {
	case ".png":
		img, err = png.Decode(f)
	case ".bmp":
		img, err = bmp.Decode(f)
	default:
		img, err = tiff.Decode(f)
	}
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot decode atlas page %s", pagepath)
	}
	b := img.Bounds()
	if b.Dx() != w || b.Dy() != h {
		return nil, core.Error(core.EINVALID, "atlas page %s is %dx%d, expected %dx%d",
			pagepath, b.Dx(), b.Dy(), w, h)
	}
	gray := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray.Pix, nil
}

func (p *parser) parseChar(rec record) error {
	if !p.common {
		return core.Error(core.EPRECONDITION, "char precedes common record")
	}
	id, err := rec.ints("id")
	if err != nil {
		return err
	}
	if id[0] <= 0 {
		return core.Error(core.EINVALID, "invalid glyph id %d", id[0])
	}
	v, err := rec.floats("x", "y", "width", "height", "xoffset", "yoffset", "xadvance")
	if err != nil {
		return err
	}
	x, y, width, height := v[0], v[1], v[2], v[3]
	inv := p.face.InverseGlyphTextureExtent()
	g := font.NewGlyph(font.GlyphIndex(id[0]))
	g.SetSubTextureOrigin(f32.Vec2{x * inv[0], 1 - (y+height)*inv[1]})
	g.SetExtent(f32.Vec2{width, height})
	g.SetSubTextureExtent(f32.Vec2{width * inv[0], height * inv[1]})
	g.SetBearingFromOffsets(p.face.Ascent(), v[4], v[5])
	g.SetAdvance(v[6])
	p.face.Upsert(g)
	return nil
}

func (p *parser) parseKerning(rec record) error {
	pair, err := rec.ints("first", "second")
	if err != nil {
		return err
	}
	if pair[0] <= 0 || pair[1] <= 0 {
		return core.Error(core.EINVALID, "invalid kerning pair %d/%d", pair[0], pair[1])
	}
	amount, err := rec.floats("amount")
	if err != nil {
		return err
	}
	return p.face.SetKerning(font.GlyphIndex(pair[0]), font.GlyphIndex(pair[1]), amount[0])
}
