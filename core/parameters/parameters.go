/*
Package parameters holds grouped registers of label styling parameters.

Registers are organized in groups, similar to TeX's grouping. Parameters
pushed within a group are visible until the group ends; lookups fall back to
enclosing groups and finally to the base values. This is used to inherit
styles through nested label documents.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"image/color"

	"github.com/npillmayer/tyll/core/dimen"
	"github.com/npillmayer/tyll/core/percent"
)

// LabelParameter is a key for a styling parameter.
type LabelParameter int

const (
	none LabelParameter = iota
	P_FONTSIZE
	P_WORDWRAP
	P_LINEWIDTH
	P_ALIGNMENT
	P_ANCHOR
	P_COLOR
	P_OPACITY
	P_MARGINS
	P_LINEFEED
	P_STOPPER
)

// Margins are distances top, right, bottom and left.
type Margins [4]dimen.Dimen

type parameterGroup struct {
	params map[LabelParameter]interface{}
	level  int
	next   *parameterGroup
}

// Registers is a stack of parameter groups on top of base values.
type Registers struct {
	base       [P_STOPPER]interface{}
	groups     *parameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

// NewRegisters creates registers initialized with default values.
func NewRegisters() *Registers {
	regs := &Registers{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_FONTSIZE] = 16 * dimen.BP       // dimension
	p[P_WORDWRAP] = false               // a bool
	p[P_LINEWIDTH] = dimen.Zero         // dimension, 0 = unbounded
	p[P_ALIGNMENT] = "left"             // a string
	p[P_ANCHOR] = "baseline"            // a string
	p[P_COLOR] = color.NRGBA{A: 0xff}   // color
	p[P_OPACITY] = percent.Percent(100) // percentage
	p[P_MARGINS] = Margins{}            // top, right, bottom, left
	p[P_LINEFEED] = '\n'                // a rune
}

// Grouplevel returns the current nesting level of groups.
func (regs *Registers) Grouplevel() int {
	return regs.grouplevel
}

// Begingroup opens a new group.
func (regs *Registers) Begingroup() {
	regs.grouplevel++
}

// Endgroup closes the innermost group, dropping all parameters pushed
// within it.
func (regs *Registers) Endgroup() {
	if regs.grouplevel > 0 {
		if regs.groups != nil && regs.groups.level == regs.grouplevel {
			regs.groups = regs.groups.next
		}
		regs.grouplevel--
	}
}

// Push sets a parameter for the current group.
func (regs *Registers) Push(key LabelParameter, value interface{}) {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of label parameters")
	}
	if regs.grouplevel > 0 {
		var g *parameterGroup
		if regs.groups == nil || regs.groups.level < regs.grouplevel {
			g = &parameterGroup{}
			g.params = make(map[LabelParameter]interface{})
			g.level = regs.grouplevel
			g.next = regs.groups
			regs.groups = g
		} else {
			g = regs.groups
		}
		g.params[key] = value
	} else {
		regs.base[key] = value
	}
}

// Get returns the value of a parameter, as visible from the current group.
func (regs *Registers) Get(key LabelParameter) interface{} {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of label parameters")
	}
	var value interface{}
	if regs.grouplevel > 0 {
		for g := regs.groups; g != nil; g = g.next {
			value = g.params[key]
			if value != nil {
				break
			}
		}
	}
	if value == nil {
		value = regs.base[key]
	}
	return value
}

// S returns a string parameter.
func (regs *Registers) S(key LabelParameter) string {
	return regs.Get(key).(string)
}

// B returns a boolean parameter.
func (regs *Registers) B(key LabelParameter) bool {
	return regs.Get(key).(bool)
}

// D returns a dimension parameter.
func (regs *Registers) D(key LabelParameter) dimen.Dimen {
	return regs.Get(key).(dimen.Dimen)
}

// R returns a rune parameter.
func (regs *Registers) R(key LabelParameter) rune {
	return regs.Get(key).(rune)
}

// C returns a color parameter.
func (regs *Registers) C(key LabelParameter) color.NRGBA {
	return regs.Get(key).(color.NRGBA)
}

// P returns a percentage parameter.
func (regs *Registers) P(key LabelParameter) percent.Percent {
	return regs.Get(key).(percent.Percent)
}

// M returns the margins parameter.
func (regs *Registers) M(key LabelParameter) Margins {
	return regs.Get(key).(Margins)
}
