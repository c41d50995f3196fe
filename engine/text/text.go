package text

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/cords"
	"github.com/npillmayer/tyll/core"
	"github.com/npillmayer/tyll/core/font"
	"golang.org/x/text/encoding"
	"golang.org/x/text/unicode/norm"
)

// DefaultLineFeed is the line feed code-point of new texts.
const DefaultLineFeed = '\n'

// Text is a sequence of code-points with a designated line feed code-point.
type Text struct {
	runes    []rune
	linefeed rune
}

// New creates an empty text.
func New() *Text {
	return &Text{linefeed: DefaultLineFeed}
}

// FromString creates a text from a Go string. The string is normalized to
// NFC, so that a composed character is depicted by a single glyph.
// A base letter followed by a combining mark becomes the precomposed
// code-point, which a bitmap face may lack even if it holds both parts.
// Use FromRunes to keep code-points as they are.
func FromString(s string) *Text {
	t := New()
	t.SetString(s)
	return t
}

// FromRunes creates a text from a slice of code-points, which is copied.
// Code-points are not normalized.
func FromRunes(runes []rune) *Text {
	t := New()
	t.SetRunes(runes)
	return t
}

// FromCord creates a text from a cord.
func FromCord(c cords.Cord) *Text {
	if c.IsVoid() {
		return New()
	}
	return FromString(c.String())
}

// Decode creates a text from bytes in an encoding other than UTF-8, e.g.,
// charmap.ISO8859_1.
func Decode(b []byte, enc encoding.Encoding) (*Text, error) {
	if enc == nil {
		return nil, core.Error(core.EPRECONDITION, "cannot decode text without encoding")
	}
	decoded, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot decode text")
	}
	return FromString(string(decoded)), nil
}

// SetString replaces the content of t by s, normalized to NFC.
func (t *Text) SetString(s string) {
	s = norm.NFC.String(s)
	t.runes = make([]rune, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		t.runes = append(t.runes, r)
	}
}

// SetRunes replaces the content of t by a copy of runes.
func (t *Text) SetRunes(runes []rune) {
	t.runes = make([]rune, len(runes))
	copy(t.runes, runes)
}

// Runes returns the code-points of t. Clients must not modify them.
func (t *Text) Runes() []rune {
	if t == nil {
		return nil
	}
	return t.runes
}

// Len returns the number of code-points of t.
func (t *Text) Len() int {
	if t == nil {
		return 0
	}
	return len(t.runes)
}

func (t *Text) String() string {
	return string(t.Runes())
}

// LineFeed returns the code-point which ends a line.
func (t *Text) LineFeed() rune {
	return t.linefeed
}

// SetLineFeed sets the code-point which ends a line.
func (t *Text) SetLineFeed(lf rune) {
	t.linefeed = lf
}

// DepictableCount counts the code-points of t which are depictable in face f.
func (t *Text) DepictableCount(f *font.Face) int {
	count := 0
	for _, r := range t.Runes() {
		if f.Depictable(font.GlyphIndex(r)) {
			count++
		}
	}
	return count
}

// AppendChars appends all code-points of t to dst.
func (t *Text) AppendChars(dst []rune) []rune {
	return append(dst, t.Runes()...)
}

// AppendDepictableChars appends all code-points of t which are depictable in
// face f to dst.
func (t *Text) AppendDepictableChars(dst []rune, f *font.Face) []rune {
	for _, r := range t.Runes() {
		if f.Depictable(font.GlyphIndex(r)) {
			dst = append(dst, r)
		}
	}
	return dst
}

// --- Cords -----------------------------------------------------------------

// Cord exports t as a cord, with a leaf for every line.
func (t *Text) Cord() cords.Cord {
	b := cords.NewBuilder()
	s := t.String()
	lf := string(t.linefeed)
	for len(s) > 0 {
		i := strings.Index(s, lf)
		if i < 0 {
			b.Append(Leaf{content: s})
			break
		}
		b.Append(Leaf{content: s[:i+len(lf)]})
		s = s[i+len(lf):]
	}
	tracer().Debugf("exported text of %d code-points as cord", t.Len())
	return b.Cord()
}

// Leaf is the leaf type of cords created by Text.Cord.
type Leaf struct {
	content string
}

// Weight of a leaf is its string length in bytes.
func (l Leaf) Weight() uint64 {
	return uint64(len(l.content))
}

func (l Leaf) String() string {
	return l.content
}

// Split splits a leaf at position i, resulting in 2 new leafs.
func (l Leaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return Leaf{content: l.content[:i]}, Leaf{content: l.content[i:]}
}

// Substring returns a string segment of the leaf's text fragment.
func (l Leaf) Substring(i, j uint64) []byte {
	return []byte(l.content)[i:j]
}

var _ cords.Leaf = Leaf{}
