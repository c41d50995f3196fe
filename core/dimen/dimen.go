/*
Package dimen implements dimensions and units.

Dimensions are given in big points (1/72 inch), the unit font metrics are
expressed in.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Online dimension conversion for print:
// http://www.unitconversion.org/unit_converter/typography-ex.html

// Dimen is a dimension type.
// Values are in big points.
type Dimen float32

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	BP   Dimen = 1             // big point (PDF) = 1/72 inch
	PX   Dimen = 1             // "pixels", at PointsPerInch
	PT   Dimen = 72 / 72.27    // printers point 1/72.27 inch
	MM   Dimen = 72 / 25.4     // millimeters
	CM   Dimen = 720 / 25.4    // centimeters
	IN   Dimen = PointsPerInch // inch
)

// PointsPerInch is the number of big points per inch.
const PointsPerInch = 72

// Infinity is the largest possible dimension
const Infinity = Dimen(math.MaxFloat32)

// Stringer implementation.
func (d Dimen) String() string {
	return fmt.Sprintf("%gbp", float32(d))
}

// Points returns a dimension in big (PDF) points.
func (d Dimen) Points() float32 {
	return float32(d)
}

// Pixels returns a dimension in pixels for a display resolution.
func (d Dimen) Pixels(pixelPerInch float32) float32 {
	return float32(d) * PixelsPerPoint(pixelPerInch)
}

// PixelsPerPoint returns the scale from big points to pixels for a display
// resolution, given in pixels per inch.
func PixelsPerPoint(pixelPerInch float32) float32 {
	return pixelPerInch / PointsPerInch
}

// Point is a point on a page.
type Point struct {
	X, Y Dimen
}

// Origin is origin
var Origin = Point{0, 0}

// Shift a point along a vector.
func (p *Point) Shift(vector Point) *Point {
	p.X += vector.X
	p.Y += vector.Y
	return p
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+))(%|[a-zA-Z]{2})?$`)

// ParseDimen parses a string to return a dimension. Syntax is CSS Unit.
// Values without unit are taken as big points.
// If a percentage value is given (`80%`), the second return value will be true
// and the dimension holds the plain number.
func ParseDimen(s string) (Dimen, bool, error) {
	d := dimenPattern.FindStringSubmatch(strings.TrimSpace(s))
	if len(d) < 2 {
		return 0, false, errors.New("format error parsing dimension")
	}
	scale := BP
	ispcnt := false
	if len(d) > 2 {
		switch strings.ToLower(d[2]) {
		case "pt":
			scale = PT
		case "mm":
			scale = MM
		case "bp", "px", "":
			scale = BP
		case "cm":
			scale = CM
		case "in":
			scale = IN
		case "%":
			scale, ispcnt = 1, true
		default:
			return 0, false, errors.New("format error parsing dimension: unknown unit " + d[2])
		}
	}
	n, err := strconv.ParseFloat(d[1], 32)
	if err != nil {
		return 0, false, errors.New("format error parsing dimension")
	}
	return Dimen(n) * scale, ispcnt, nil
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}
