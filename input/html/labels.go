package html

import (
	"io"
	"strings"
	"unicode"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/tyll/core"
	"github.com/npillmayer/tyll/core/dimen"
	"github.com/npillmayer/tyll/core/font"
	"github.com/npillmayer/tyll/core/parameters"
	"github.com/npillmayer/tyll/engine/label"
	"github.com/npillmayer/tyll/engine/text"
	"golang.org/x/net/html"
)

// ReadLabels parses an HTML document and returns a label for every <label>
// element, in document order. All labels are set in face. sheet may be nil.
func ReadLabels(r io.Reader, sheet *Stylesheet, face *font.Face) ([]*label.Label, error) {
	if face == nil {
		return nil, core.Error(core.EPRECONDITION, "reading labels requires a font face")
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse label document")
	}
	rd := &reader{
		sheet: sheet,
		face:  face,
		regs:  parameters.NewRegisters(),
	}
	rd.regs.Push(parameters.P_FONTSIZE, dimen.Dimen(label.New().FontSize())*dimen.BP)
	if err := rd.walk(doc); err != nil {
		return nil, err
	}
	tracer().Infof("read %d labels", len(rd.labels))
	return rd.labels, nil
}

type reader struct {
	sheet  *Stylesheet
	face   *font.Face
	regs   *parameters.Registers
	labels []*label.Label
}

func (rd *reader) walk(n *html.Node) error {
	if n.Type == html.ElementNode {
		rd.regs.Begingroup()
		defer rd.regs.Endgroup()
		applyDeclarations(rd.regs, rd.sheet.declarationsFor(n))
		if style, ok := attribute(n, "style"); ok {
			decls, err := parseStyleAttribute(style)
			if err != nil {
				tracer().Errorf("ignoring style of <%s>: %v", n.Data, err)
			} else {
				applyDeclarations(rd.regs, decls)
			}
		}
		if n.Data == "label" {
			l, err := rd.makeLabel(n)
			if err != nil {
				return err
			}
			rd.labels = append(rd.labels, l)
			return nil
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := rd.walk(c); err != nil {
			return err
		}
	}
	return nil
}

func (rd *reader) makeLabel(n *html.Node) (*label.Label, error) {
	regs := rd.regs
	l := label.New()
	l.SetFontFace(rd.face)
	l.SetFontSize(regs.D(parameters.P_FONTSIZE).Points())
	tc := textCollector{lf: regs.R(parameters.P_LINEFEED)}
	tc.collect(n)
	t := text.FromString(string(tc.runes))
	t.SetLineFeed(tc.lf)
	l.SetText(t)
	l.SetWordWrap(regs.B(parameters.P_WORDWRAP))
	if lw := regs.D(parameters.P_LINEWIDTH); lw > 0 {
		if err := l.SetTargetLineWidth(lw.Points()); err != nil {
			return nil, err
		}
	}
	if a, err := label.ParseAlignment(regs.S(parameters.P_ALIGNMENT)); err == nil {
		l.SetAlignment(a)
	}
	if a, err := label.ParseLineAnchor(regs.S(parameters.P_ANCHOR)); err == nil {
		l.SetLineAnchor(a)
	}
	c := regs.C(parameters.P_COLOR)
	c.A = uint8(float32(c.A)*regs.P(parameters.P_OPACITY).Fraction() + 0.5)
	l.SetColor(c)
	m := regs.M(parameters.P_MARGINS)
	l.SetMargins([4]float32{m[0].Points(), m[1].Points(), m[2].Points(), m[3].Points()})
	tracer().Debugf("label %q", t.String())
	return l, nil
}

// parseStyleAttribute parses the declarations of a style attribute. The
// declaration parser drops the value of a final declaration without a
// terminating semicolon, so one is appended if missing.
func parseStyleAttribute(style string) ([]*css.Declaration, error) {
	style = strings.TrimSpace(style)
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	return parser.ParseDeclarations(style)
}

func attribute(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// textCollector gathers the text content of an element. Runs of white-space
// collapse to a single space, white-space at line boundaries is dropped.
type textCollector struct {
	lf    rune
	runes []rune
	space bool // white-space pending
}

func (tc *textCollector) collect(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			tc.text(c.Data)
		case html.ElementNode:
			if c.Data == "br" {
				tc.runes = append(tc.runes, tc.lf)
				tc.space = false
			} else {
				tc.collect(c)
			}
		}
	}
}

func (tc *textCollector) text(s string) {
	for _, r := range s {
		if unicode.IsSpace(r) {
			tc.space = true
			continue
		}
		if tc.space && len(tc.runes) > 0 && tc.runes[len(tc.runes)-1] != tc.lf {
			tc.runes = append(tc.runes, ' ')
		}
		tc.space = false
		tc.runes = append(tc.runes, r)
	}
}
