package html

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/tyll/core"
	"github.com/npillmayer/tyll/core/dimen"
	"github.com/npillmayer/tyll/core/parameters"
	"github.com/npillmayer/tyll/core/percent"
	"github.com/npillmayer/tyll/engine/label"
	"golang.org/x/image/colornames"
)

// applyDeclarations pushes the values of CSS declarations to the current
// group of regs. Important declarations are applied after all others.
func applyDeclarations(regs *parameters.Registers, decls []*css.Declaration) {
	for _, important := range []bool{false, true} {
		for _, d := range decls {
			if d.Important != important {
				continue
			}
			if err := applyProperty(regs, d.Property, d.Value); err != nil {
				tracer().Errorf("ignoring property %s: %v", d.Property, err)
			}
		}
	}
}

func applyProperty(regs *parameters.Registers, property, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.TrimSpace(property)) {
	case "font-size":
		d, ispcnt, err := dimen.ParseDimen(value)
		if err != nil {
			return core.WrapError(err, core.EINVALID, "font-size %q", value)
		}
		if ispcnt {
			d = regs.D(parameters.P_FONTSIZE) * d / 100
		}
		if d <= 0 {
			return core.Error(core.EINVALID, "font-size must be positive, is %q", value)
		}
		regs.Push(parameters.P_FONTSIZE, d)
	case "line-width", "width":
		d, ispcnt, err := dimen.ParseDimen(value)
		if err != nil || ispcnt {
			return core.Error(core.EINVALID, "line width must be a dimension, is %q", value)
		}
		regs.Push(parameters.P_LINEWIDTH, dimen.Max(d, dimen.Zero))
	case "white-space", "word-wrap", "overflow-wrap":
		wrap, err := wrapValue(value)
		if err != nil {
			return err
		}
		regs.Push(parameters.P_WORDWRAP, wrap)
	case "text-align":
		if _, err := label.ParseAlignment(value); err != nil {
			return err
		}
		regs.Push(parameters.P_ALIGNMENT, value)
	case "line-anchor":
		if _, err := label.ParseLineAnchor(value); err != nil {
			return err
		}
		regs.Push(parameters.P_ANCHOR, value)
	case "color":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		regs.Push(parameters.P_COLOR, c)
	case "opacity":
		p, err := percent.FromString(value)
		if err != nil {
			return core.WrapError(err, core.EINVALID, "opacity %q", value)
		}
		regs.Push(parameters.P_OPACITY, p)
	case "margin":
		m, err := parseMargins(value)
		if err != nil {
			return err
		}
		regs.Push(parameters.P_MARGINS, m)
	default:
		tracer().Debugf("unsupported property %s", property)
	}
	return nil
}

func wrapValue(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "normal", "pre-wrap", "pre-line", "break-word", "anywhere":
		return true, nil
	case "nowrap", "pre", "none":
		return false, nil
	}
	return false, core.Error(core.EINVALID, "unknown wrap mode %q", value)
}

// parseMargins parses the CSS margin shorthand with 1 to 4 values.
func parseMargins(value string) (parameters.Margins, error) {
	var m parameters.Margins
	fields := strings.Fields(value)
	if len(fields) == 0 || len(fields) > 4 {
		return m, core.Error(core.EINVALID, "margin needs 1 to 4 values, is %q", value)
	}
	d := make([]dimen.Dimen, len(fields))
	for i, f := range fields {
		var ispcnt bool
		var err error
		if d[i], ispcnt, err = dimen.ParseDimen(f); err != nil || ispcnt {
			return m, core.Error(core.EINVALID, "margin values must be dimensions, is %q", value)
		}
	}
	switch len(d) {
	case 1:
		m = parameters.Margins{d[0], d[0], d[0], d[0]}
	case 2:
		m = parameters.Margins{d[0], d[1], d[0], d[1]}
	case 3:
		m = parameters.Margins{d[0], d[1], d[2], d[1]}
	default:
		m = parameters.Margins{d[0], d[1], d[2], d[3]}
	}
	return m, nil
}

// ParseColor parses a CSS color value: hex notation, rgb() or rgba()
// functional notation, or a color name.
func ParseColor(value string) (color.NRGBA, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseRGBColor(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, core.Error(core.EINVALID, "unknown color %q", value)
}

func parseHexColor(hex string) (color.NRGBA, error) {
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, core.WrapError(err, core.EINVALID, "invalid hex color #%s", hex)
	}
	switch len(hex) {
	case 3:
		return color.NRGBA{
			R: uint8(n>>8&0xf) * 0x11,
			G: uint8(n>>4&0xf) * 0x11,
			B: uint8(n&0xf) * 0x11,
			A: 0xff,
		}, nil
	case 6:
		return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
	case 8:
		return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
	}
	return color.NRGBA{}, core.Error(core.EINVALID, "invalid hex color #%s", hex)
}

func parseRGBColor(s string) (color.NRGBA, error) {
	lpar, rpar := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if lpar < 0 || rpar < lpar {
		return color.NRGBA{}, core.Error(core.EINVALID, "invalid color %q", s)
	}
	args := strings.Split(s[lpar+1:rpar], ",")
	if len(args) != 3 && len(args) != 4 {
		return color.NRGBA{}, core.Error(core.EINVALID, "color %q needs 3 or 4 components", s)
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		arg := strings.TrimSpace(args[i])
		if strings.HasSuffix(arg, "%") {
			p, err := percent.FromString(arg)
			if err != nil {
				return color.NRGBA{}, core.WrapError(err, core.EINVALID, "invalid color %q", s)
			}
			rgb[i] = uint8(p.Fraction()*0xff + 0.5)
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 || n > 0xff {
			return color.NRGBA{}, core.Error(core.EINVALID, "invalid color component %q", arg)
		}
		rgb[i] = uint8(n)
	}
	c := color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
	if len(args) == 4 {
		p, err := percent.FromString(args[3])
		if err != nil {
			return color.NRGBA{}, core.WrapError(err, core.EINVALID, "invalid alpha in %q", s)
		}
		c.A = uint8(p.Fraction()*0xff + 0.5)
	}
	return c, nil
}
