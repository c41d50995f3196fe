package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyll.labels")
	defer teardown()
	//
	d, _, err := ParseDimen("12px")
	if err != nil {
		t.Errorf("(1) %s", err.Error())
	} else if d != 12*BP {
		t.Errorf("(1) expected d to be 12bp, is %s", d)
	}
	//
	d, _, err = ParseDimen("0")
	if err != nil {
		t.Errorf("(2) %s", err.Error())
	} else if d != 0 {
		t.Errorf("(2) expected d to be 0, is %s", d)
	}
	//
	d, ispcnt, err := ParseDimen("20%")
	if err != nil {
		t.Errorf("(3) %s", err.Error())
	} else if ispcnt != true {
		t.Errorf("(3) expected percentage-marker to be true, is %v", ispcnt)
	} else if d != 20 {
		t.Errorf("(3) expected d to be 20, is %s", d)
	}
}

func TestParseDecimalDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyll.labels")
	defer teardown()
	//
	d, _, err := ParseDimen("12.5pt")
	assert.NoError(t, err)
	assert.InDelta(t, 12.5*72/72.27, float64(d), 1e-4)
	d, _, err = ParseDimen(" 1in ")
	assert.NoError(t, err)
	assert.Equal(t, Dimen(72), d)
	d, _, err = ParseDimen("-.5IN")
	assert.NoError(t, err)
	assert.Equal(t, Dimen(-36), d)
	_, _, err = ParseDimen("12em")
	assert.Error(t, err)
	_, _, err = ParseDimen("pt")
	assert.Error(t, err)
}

func TestPixels(t *testing.T) {
	assert.Equal(t, float32(2), PixelsPerPoint(144))
	assert.Equal(t, float32(20), Dimen(10).Pixels(144))
	assert.Equal(t, Dimen(3), Max(2, 3))
	assert.Equal(t, Dimen(2), Min(2, 3))
	p := Point{1, 2}
	p.Shift(Point{1, 1})
	assert.Equal(t, Point{2, 3}, p)
}
