package label

import (
	"strings"

	"github.com/npillmayer/tyll/core"
)

// Alignment is the horizontal alignment of the lines of a label.
type Alignment uint8

// Alignments of lines.
const (
	LeftAligned Alignment = iota
	Centered
	RightAligned
)

func (a Alignment) String() string {
	switch a {
	case LeftAligned:
		return "left"
	case Centered:
		return "center"
	case RightAligned:
		return "right"
	}
	return "<unknown alignment>"
}

// ParseAlignment parses an alignment from its name. CSS values for
// text-align are accepted as well.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "start":
		return LeftAligned, nil
	case "center", "centre", "centered":
		return Centered, nil
	case "right", "end":
		return RightAligned, nil
	}
	return LeftAligned, core.Error(core.EINVALID, "unknown alignment %q", s)
}

// LineAnchor is the horizontal guide of a line which is placed at the
// vertical position of a label's origin.
type LineAnchor uint8

// Line anchors.
const (
	Ascent LineAnchor = iota
	Center
	Baseline
	Descent
)

func (a LineAnchor) String() string {
	switch a {
	case Ascent:
		return "ascent"
	case Center:
		return "center"
	case Baseline:
		return "baseline"
	case Descent:
		return "descent"
	}
	return "<unknown anchor>"
}

// ParseLineAnchor parses a line anchor from its name.
func ParseLineAnchor(s string) (LineAnchor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascent", "top":
		return Ascent, nil
	case "center", "centre", "middle":
		return Center, nil
	case "baseline":
		return Baseline, nil
	case "descent", "bottom":
		return Descent, nil
	}
	return Baseline, core.Error(core.EINVALID, "unknown line anchor %q", s)
}
