package typesetter

import (
	"errors"
	"sort"

	"github.com/npillmayer/tyll/core"
	"github.com/npillmayer/tyll/core/font"
	"github.com/npillmayer/tyll/core/geom"
	"github.com/npillmayer/tyll/engine/glyphcloud"
	"github.com/npillmayer/tyll/engine/label"
	"golang.org/x/image/math/f32"
)

// ErrNoFontFace is returned for labels without a font face.
var ErrNoFontFace = errors.New("label has no font face")

// ErrMixedFontFaces is returned if labels typeset into a single cloud do not
// share their font face.
var ErrMixedFontFaces = errors.New("labels of a cloud have to share a font face")

// Range is the range of vertex indices from ≤ i < to a label has been
// typeset to.
type Range struct {
	From, To int
}

// Len is the number of vertices in r.
func (r Range) Len() int {
	return r.To - r.From
}

// delimiters is sorted by code-point.
var delimiters = [...]rune{'\n', ' ', '(', ')', ',', '-', '.', '/', '<', '>', '[', ']'}

// IsDelimiter is true if r is a break opportunity for word wrapping.
func IsDelimiter(r rune) bool {
	i := sort.Search(len(delimiters), func(i int) bool { return delimiters[i] >= r })
	return i < len(delimiters) && delimiters[i] == r
}

// Typeset lays out a label into cloud, replacing its previous content. It
// returns the extent of the label in target space. If optimize is set, the
// vertices are grouped by glyph afterwards.
func Typeset(cloud *glyphcloud.Cloud, l *label.Label, optimize bool) (f32.Vec2, error) {
	extent, _, err := TypesetAll(cloud, []*label.Label{l}, optimize)
	return extent, err
}

// TypesetAll lays out a couple of labels into cloud, replacing its previous
// content. All labels have to share a font face. TypesetAll returns the
// component-wise maximum of the labels' extents and the range of vertices
// of every label. Optimizing keeps vertices within the range of their label.
func TypesetAll(cloud *glyphcloud.Cloud, labels []*label.Label, optimize bool) (f32.Vec2, []Range, error) {
	var extent f32.Vec2
	if cloud == nil {
		return extent, nil, core.Error(core.EPRECONDITION, "typesetting requires a glyph cloud")
	}
	face, err := commonFace(labels)
	if err != nil {
		return extent, nil, err
	}
	capacity := 0
	for _, l := range labels {
		capacity += l.Text().DepictableCount(face)
	}
	cloud.Reset(capacity)
	ranges := make([]Range, len(labels))
	if face != nil {
		cloud.SetTexture(face.GlyphTexture())
	}
	for i, l := range labels {
		var buckets *glyphcloud.Buckets
		if optimize {
			buckets = glyphcloud.NewBuckets()
		}
		from := cloud.Len()
		lo := newLayout(l, cloud, buckets)
		ext := lo.run()
		to := cloud.Len()
		cloud.TransformRange(from, to, l.Transform())
		cloud.SetColor(from, to, l.TextColor())
		if optimize {
			cloud.OptimizeRange(from, to, buckets)
		}
		ranges[i] = Range{From: from, To: to}
		extent = geom.Max2(extent, transformExtent(ext, l.Transform()))
	}
	tracer().Debugf("typeset %d label(s) to %d vertices, extent = %v", len(labels), cloud.Len(), extent)
	if err := cloud.Update(); err != nil {
		return extent, ranges, core.WrapError(err, core.EINTERNAL, "cannot upload glyph vertices")
	}
	return extent, ranges, nil
}

// Extent measures a label without typesetting it. The extent is given in
// target space and is identical to the extent Typeset reports.
func Extent(l *label.Label) (f32.Vec2, error) {
	if l == nil || l.FontFace() == nil {
		return f32.Vec2{}, core.WrapError(ErrNoFontFace, core.EPRECONDITION, "cannot measure label")
	}
	lo := newLayout(l, nil, nil)
	return transformExtent(lo.run(), l.Transform()), nil
}

func commonFace(labels []*label.Label) (*font.Face, error) {
	var face *font.Face
	for i, l := range labels {
		if l == nil || l.FontFace() == nil {
			return nil, core.WrapError(ErrNoFontFace, core.EPRECONDITION, "cannot typeset label #%d", i)
		}
		if face == nil {
			face = l.FontFace()
		} else if l.FontFace() != face {
			return nil, core.WrapError(ErrMixedFontFaces, core.EPRECONDITION,
				"label #%d is set in %s, expected %s", i, l.FontFace(), face)
		}
	}
	return face, nil
}

// transformExtent maps the width and height of a label to the lengths of the
// transformed extent edges.
func transformExtent(ext f32.Vec2, m f32.Mat4) f32.Vec2 {
	if geom.IsIdentity(m) {
		return ext
	}
	o := geom.TransformPoint(m, f32.Vec3{})
	return f32.Vec2{
		geom.Distance3(geom.TransformPoint(m, f32.Vec3{ext[0], 0, 0}), o),
		geom.Distance3(geom.TransformPoint(m, f32.Vec3{0, ext[1], 0}), o),
	}
}

// --- Layout ----------------------------------------------------------------

// segment is a run of glyphs. start is the index of the segment's first
// vertex, x the pen position at its first glyph. ink is the pen position
// after the last depictable glyph of the segment.
type segment struct {
	start  int
	x      float32
	ink    float32
	before float32 // ink of the line when the segment started
	inked  bool
	open   bool
}

// layout is the state of typesetting a single label. A layout without a
// cloud is a dry run; it takes identical decisions but emits nothing.
type layout struct {
	label      *label.Label
	face       *font.Face
	cloud      *glyphcloud.Cloud
	buckets    *glyphcloud.Buckets
	lineWidth  float32 // 0 for unbounded lines
	lineHeight float32
	pen        f32.Vec2
	n          int     // index of the next vertex
	line       segment // current line
	word       segment // glyphs since the last delimiter
	extent     f32.Vec2
}

func newLayout(l *label.Label, cloud *glyphcloud.Cloud, buckets *glyphcloud.Buckets) *layout {
	lo := &layout{
		label:      l,
		face:       l.FontFace(),
		cloud:      cloud,
		buckets:    buckets,
		lineHeight: l.FontFace().LineHeight(),
	}
	if l.WordWrap() && l.LineWidth() > 0 {
		lo.lineWidth = l.LineWidth()
	}
	if cloud != nil {
		lo.n = cloud.Len()
	}
	lo.line.start = lo.n
	return lo
}

// run lays out the text of the label and returns its extent in font-face
// space.
func (lo *layout) run() f32.Vec2 {
	t := lo.label.Text()
	if t.Len() == 0 {
		return f32.Vec2{}
	}
	lf := t.LineFeed()
	lo.pen = f32.Vec2{0, lo.label.LineAnchorOffset()}
	var prev font.GlyphIndex
	hasPrev := false
	for _, r := range t.Runes() {
		if r == lf {
			lo.closeLine(lo.n, lo.line.ink)
			lo.newLine()
			lo.word = segment{}
			hasPrev = false
			continue
		}
		gi := font.GlyphIndex(r)
		g, ok := lo.face.Glyph(gi)
		var advance float32
		depictable := ok && g.Depictable()
		if ok {
			advance = g.Advance()
		}
		var kern float32
		if hasPrev {
			kern = lo.face.Kerning(prev, gi)
		}
		for depictable && lo.overflows(kern, advance) {
			if !lo.word.open { // glyph starts a word
				lo.openWord()
				kern = 0
			}
			if lo.word.x <= 0 {
				lo.breakWord()
				kern = 0
			} else {
				lo.wrapWord()
			}
		}
		lo.pen[0] += kern
		if !lo.word.open {
			lo.openWord()
		}
		if depictable {
			lo.emit(g)
		}
		lo.pen[0] += advance
		if depictable {
			lo.line.ink = lo.pen[0]
			lo.word.inked = true
		}
		if IsDelimiter(r) {
			lo.word.open = false
		}
		prev, hasPrev = gi, true
	}
	lo.closeLine(lo.n, lo.line.ink)
	return lo.extent
}

// overflows is true if a glyph would not fit on the current line. A glyph
// wider than the line never overflows an empty line.
func (lo *layout) overflows(kern, advance float32) bool {
	if lo.lineWidth <= 0 {
		return false
	}
	return lo.pen[0]+kern+advance > lo.lineWidth && (advance <= lo.lineWidth || lo.pen[0] > 0)
}

func (lo *layout) openWord() {
	lo.word = segment{
		start:  lo.n,
		x:      lo.pen[0],
		before: lo.line.ink,
		open:   true,
	}
}

// breakWord ends the line in the middle of a word which is too wide for a
// line on its own. The current glyph starts a new word on the next line.
func (lo *layout) breakWord() {
	lo.closeLine(lo.n, lo.line.ink)
	lo.newLine()
	lo.word = segment{start: lo.n, open: true}
}

// wrapWord ends the line before the current word and moves the glyphs of the
// word placed so far to the start of the next line.
func (lo *layout) wrapWord() {
	w := lo.word
	lo.closeLine(w.start, w.before)
	dx := -w.x
	if lo.cloud != nil {
		lo.cloud.ShiftXY(w.start, lo.n, f32.Vec2{dx, -lo.lineHeight})
	}
	ink := lo.line.ink + dx
	lo.pen = f32.Vec2{lo.pen[0] + dx, lo.pen[1] - lo.lineHeight}
	lo.line = segment{start: w.start}
	if w.inked {
		lo.line.ink = ink
	}
	lo.word = segment{start: w.start, inked: w.inked, open: true}
}

func (lo *layout) newLine() {
	lo.pen = f32.Vec2{0, lo.pen[1] - lo.lineHeight}
	lo.line = segment{start: lo.n}
}

// closeLine aligns the vertices of the current line up to index to, given
// the width of the line, and adds the line to the extent.
func (lo *layout) closeLine(to int, width float32) {
	if lo.cloud != nil {
		switch lo.label.Alignment() {
		case label.Centered:
			lo.cloud.ShiftX(lo.line.start, to, -width/2)
		case label.RightAligned:
			lo.cloud.ShiftX(lo.line.start, to, -width)
		}
	}
	if width > lo.extent[0] {
		lo.extent[0] = width
	}
	lo.extent[1] += lo.lineHeight
}

func (lo *layout) emit(g *font.Glyph) {
	if lo.cloud != nil {
		o := g.PenOrigin()
		i := lo.cloud.Append(glyphcloud.Vertex{
			Origin:    f32.Vec3{lo.pen[0] + o[0], lo.pen[1] + o[1], o[2]},
			Tangent:   g.PenTangent(),
			Bitangent: g.PenBitangent(),
			UVRect:    g.SubTextureRect(),
		})
		if lo.buckets != nil {
			lo.buckets.Add(g.Index(), i)
		}
	}
	lo.n++
}
