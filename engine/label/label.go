package label

import (
	"image/color"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/tyll/core"
	"github.com/npillmayer/tyll/core/dimen"
	"github.com/npillmayer/tyll/core/font"
	"github.com/npillmayer/tyll/core/geom"
	"github.com/npillmayer/tyll/engine/text"
	"golang.org/x/image/math/f32"
)

// DefaultFontSize is the font size of new labels, if configuration key
// "label-font-size" is not set.
const DefaultFontSize = 16

// Label is a typesetting request.
type Label struct {
	text      *text.Text
	face      *font.Face
	fontSize  float32
	wordWrap  bool
	lineWidth float32
	alignment Alignment
	anchor    LineAnchor
	color     f32.Vec4
	margins   [4]float32 // top, right, bottom, left
	transform f32.Mat4
}

// New creates a label with default styling: left aligned lines anchored at
// the baseline, no word wrap, opaque black and an identity transform.
func New() *Label {
	return &Label{
		text:      text.New(),
		fontSize:  configuredFontSize(),
		alignment: LeftAligned,
		anchor:    Baseline,
		color:     f32.Vec4{0, 0, 0, 1},
		transform: geom.Identity(),
	}
}

// NewWithText creates a label for a string, set in face.
func NewWithText(s string, face *font.Face) *Label {
	l := New()
	l.SetString(s)
	l.face = face
	return l
}

func configuredFontSize() float32 {
	if s := gconf.GetString("label-font-size"); s != "" {
		if d, ispcnt, err := dimen.ParseDimen(s); err == nil && !ispcnt && d > 0 {
			return d.Points()
		}
		tracer().Errorf("ignoring invalid label-font-size %q", s)
	}
	return DefaultFontSize
}

// Text returns the label's text.
func (l *Label) Text() *text.Text {
	return l.text
}

// SetText sets a text, which may be shared with other labels.
func (l *Label) SetText(t *text.Text) {
	if t == nil {
		t = text.New()
	}
	l.text = t
}

// SetString sets a new text for the label, created from a string. The text
// is NFC-normalized (see text.FromString); use SetText with text.FromRunes
// for faces holding decomposed characters only.
func (l *Label) SetString(s string) {
	l.text = text.FromString(s)
}

// FontFace returns the face the label is set in, if any.
func (l *Label) FontFace() *font.Face {
	return l.face
}

// SetFontFace sets the face the label is set in. The label does not own it.
func (l *Label) SetFontFace(f *font.Face) {
	l.face = f
}

// FontSize is the target size of the label's font.
func (l *Label) FontSize() float32 {
	return l.fontSize
}

// SetFontSize sets the target size of the label's font.
func (l *Label) SetFontSize(size float32) {
	l.fontSize = size
}

// WordWrap is true if lines are broken at line width.
func (l *Label) WordWrap() bool {
	return l.wordWrap
}

// SetWordWrap switches word wrap on or off.
func (l *Label) SetWordWrap(wrap bool) {
	l.wordWrap = wrap
}

// LineWidth is the width at which lines are wrapped, in font-face space.
// A line width of 0 or less means unbounded.
func (l *Label) LineWidth() float32 {
	return l.lineWidth
}

// SetLineWidth sets the line width in font-face space.
func (l *Label) SetLineWidth(w float32) {
	l.lineWidth = w
}

// SetTargetLineWidth sets the line width, given in the label's font size,
// converting it to font-face space. A face has to be set.
func (l *Label) SetTargetLineWidth(w float32) error {
	if l.face == nil {
		return core.Error(core.EPRECONDITION, "label needs a font face to convert line width")
	}
	if l.fontSize <= 0 {
		return core.Error(core.EPRECONDITION, "label font size must be positive, is %g", l.fontSize)
	}
	l.lineWidth = w * l.face.Size() / l.fontSize
	if l.lineWidth < 0 {
		l.lineWidth = 0
	}
	return nil
}

// Alignment returns the horizontal alignment of lines.
func (l *Label) Alignment() Alignment {
	return l.alignment
}

// SetAlignment sets the horizontal alignment of lines.
func (l *Label) SetAlignment(a Alignment) {
	l.alignment = a
}

// LineAnchor returns the line anchor.
func (l *Label) LineAnchor() LineAnchor {
	return l.anchor
}

// SetLineAnchor sets the line anchor.
func (l *Label) SetLineAnchor(a LineAnchor) {
	l.anchor = a
}

// LineAnchorOffset is the vertical offset of the first baseline from the
// label's origin, in font-face space. It is 0 if no face is set.
func (l *Label) LineAnchorOffset() float32 {
	if l.face == nil {
		return 0
	}
	switch l.anchor {
	case Ascent:
		return -l.face.Ascent()
	case Center:
		return -(l.face.Size()*0.5 + l.face.Descent())
	case Descent:
		return -l.face.Descent()
	}
	return 0
}

// TextColor returns the text color as RGBA components in 0…1.
func (l *Label) TextColor() f32.Vec4 {
	return l.color
}

// SetTextColor sets the text color as RGBA components in 0…1.
func (l *Label) SetTextColor(c f32.Vec4) {
	l.color = c
}

// SetColor sets the text color from a Go color.
func (l *Label) SetColor(c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	l.color = f32.Vec4{
		float32(n.R) / 0xff,
		float32(n.G) / 0xff,
		float32(n.B) / 0xff,
		float32(n.A) / 0xff,
	}
}

// Margins returns the margins top, right, bottom and left, in points. They
// are respected by SetTransform2D only.
func (l *Label) Margins() [4]float32 {
	return l.margins
}

// SetMargins sets the margins top, right, bottom and left, in points.
func (l *Label) SetMargins(m [4]float32) {
	l.margins = m
}

// --- Transforms ------------------------------------------------------------

// Transform maps font-face space to the label's target space.
func (l *Label) Transform() f32.Mat4 {
	return l.transform
}

// SetTransform sets the transform from font-face space to target space.
func (l *Label) SetTransform(m f32.Mat4) {
	l.transform = m
}

// SetTransform2D places the label on a screen. origin is given in normalized
// device coordinates (-1…1), relative to the viewport with margins removed.
// The viewport extent is given in pixels and the display resolution in pixels
// per inch. A face has to be set.
func (l *Label) SetTransform2D(origin f32.Vec2, viewport [2]int, pixelPerInch float32) error {
	if l.face == nil || l.face.Size() <= 0 {
		return core.Error(core.EPRECONDITION, "label needs a font face for 2D transform")
	}
	if viewport[0] <= 0 || viewport[1] <= 0 || pixelPerInch <= 0 {
		return core.Error(core.EINVALID, "invalid viewport %v at %g ppi", viewport, pixelPerInch)
	}
	ppiScale := dimen.PixelsPerPoint(pixelPerInch)
	vw, vh := float32(viewport[0]), float32(viewport[1])
	m := geom.Identity()
	// lower left in NDC
	m = geom.Translate(m, f32.Vec3{-1, -1, 0})
	m = geom.Scale(m, f32.Vec3{2 / vw, 2 / vh, 1})
	// points to pixels
	m = geom.Scale(m, f32.Vec3{ppiScale, ppiScale, 1})
	// origin within viewport minus margins, in points
	mg := l.margins
	ext := f32.Vec2{
		vw/ppiScale - (mg[3] + mg[1]),
		vh/ppiScale - (mg[2] + mg[0]),
	}
	m = geom.Translate(m, f32.Vec3{
		(0.5*origin[0]+0.5)*ext[0] + mg[3],
		(0.5*origin[1]+0.5)*ext[1] + mg[2],
		0,
	})
	// font-face space to font size
	s := l.fontSize / l.face.Size()
	l.transform = geom.Scale(m, f32.Vec3{s, s, 1})
	tracer().Debugf("label 2D transform = %v", l.transform)
	return nil
}

// SetTransform3D places the label in world space at origin, scaled to
// font size world units per face size, then transformed by m. A face has to
// be set.
func (l *Label) SetTransform3D(origin f32.Vec3, m f32.Mat4) error {
	if l.face == nil || l.face.Size() <= 0 {
		return core.Error(core.EPRECONDITION, "label needs a font face for 3D transform")
	}
	t := geom.Translate(geom.Identity(), origin)
	s := l.fontSize / l.face.Size()
	t = geom.Scale(t, f32.Vec3{s, s, s})
	l.transform = geom.Mul(t, m)
	return nil
}
