// Package percent implements a simple and straightforward type for percentage values.
package percent

import (
	"math"
	"strconv"
	"strings"
)

// Percent is a simple and straightforward type for percentage values
type Percent uint8

// FromInt creates a percentage, clamped to 0…100.
func FromInt(n int) Percent {
	switch {
	case n <= 0:
		return Percent(0)
	case n >= 100:
		return Percent(100)
	}
	return Percent(n)
}

// FromFloat creates a percentage, rounded and clamped to 0…100.
func FromFloat(f float64) Percent {
	switch {
	case f <= 0 || math.IsNaN(f) || math.IsInf(f, -1):
		return Percent(0)
	case f >= 100 || math.IsInf(f, 1):
		return Percent(100)
	}
	return Percent(math.Round(f))
}

// FromString parses a percentage. Either "n%" or a fraction "0.n" is
// accepted, as for CSS opacity.
func FromString(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return FromFloat(f), err
	}
	f, err := strconv.ParseFloat(s, 64)
	return FromFloat(f * 100), err
}

// Fraction returns p as a value in 0…1.
func (p Percent) Fraction() float32 {
	return float32(p) / 100
}

func (p Percent) String() string {
	return strconv.Itoa(int(p)) + "%"
}
