package label

import (
	"image/color"
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/tyll/core"
	"github.com/npillmayer/tyll/core/font"
	"github.com/npillmayer/tyll/core/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f32"
)

func testFace(t *testing.T) *font.Face {
	f := font.NewFace()
	require.NoError(t, f.SetAscent(12))
	f.SetDescent(-4)
	return f
}

func TestDefaults(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	l := New()
	assert.Equal(t, float32(DefaultFontSize), l.FontSize())
	assert.False(t, l.WordWrap())
	assert.Equal(t, float32(0), l.LineWidth())
	assert.Equal(t, LeftAligned, l.Alignment())
	assert.Equal(t, Baseline, l.LineAnchor())
	assert.Equal(t, f32.Vec4{0, 0, 0, 1}, l.TextColor())
	assert.True(t, geom.IsIdentity(l.Transform()))
	assert.Equal(t, 0, l.Text().Len())
	assert.Nil(t, l.FontFace())
}

func TestConfiguredFontSize(t *testing.T) {
	teardown := testconfig.QuickConfig(t, map[string]string{
		"label-font-size": "24bp",
	})
	defer teardown()
	//
	assert.Equal(t, float32(24), New().FontSize())
}

func TestParseStyles(t *testing.T) {
	a, err := ParseAlignment("Center")
	assert.NoError(t, err)
	assert.Equal(t, Centered, a)
	a, err = ParseAlignment("end")
	assert.NoError(t, err)
	assert.Equal(t, RightAligned, a)
	_, err = ParseAlignment("justify")
	assert.Equal(t, core.EINVALID, core.Code(err))
	anchor, err := ParseLineAnchor("descent")
	assert.NoError(t, err)
	assert.Equal(t, Descent, anchor)
	assert.Equal(t, "ascent", Ascent.String())
	assert.Equal(t, "right", RightAligned.String())
	_, err = ParseLineAnchor("nowhere")
	assert.Error(t, err)
}

func TestLineAnchorOffset(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	l := NewWithText("x", testFace(t))
	for anchor, offset := range map[LineAnchor]float32{
		Ascent:   -12,
		Center:   -4,
		Baseline: 0,
		Descent:  4,
	} {
		l.SetLineAnchor(anchor)
		assert.Equal(t, offset, l.LineAnchorOffset(), anchor.String())
	}
	l.SetFontFace(nil)
	l.SetLineAnchor(Ascent)
	assert.Equal(t, float32(0), l.LineAnchorOffset())
}

func TestTargetLineWidth(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	l := New()
	assert.Error(t, l.SetTargetLineWidth(100))
	l.SetFontFace(testFace(t))
	l.SetFontSize(32)
	require.NoError(t, l.SetTargetLineWidth(100))
	assert.Equal(t, float32(50), l.LineWidth())
	require.NoError(t, l.SetTargetLineWidth(-5))
	assert.Equal(t, float32(0), l.LineWidth())
}

func TestTransform2D(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	l := NewWithText("x", testFace(t))
	l.SetFontSize(16)
	require.NoError(t, l.SetTransform2D(f32.Vec2{-1, -1}, [2]int{200, 100}, 72))
	p := geom.TransformPoint(l.Transform(), f32.Vec3{0, 0, 0})
	assert.InDelta(t, -1, p[0], 1e-6)
	assert.InDelta(t, -1, p[1], 1e-6)
	p = geom.TransformPoint(l.Transform(), f32.Vec3{200, 100, 0})
	assert.InDelta(t, 1, p[0], 1e-6)
	assert.InDelta(t, 1, p[1], 1e-6)
	//
	require.NoError(t, l.SetTransform2D(f32.Vec2{1, 1}, [2]int{200, 100}, 72))
	p = geom.TransformPoint(l.Transform(), f32.Vec3{0, 0, 0})
	assert.InDelta(t, 1, p[0], 1e-6)
	assert.InDelta(t, 1, p[1], 1e-6)
	//
	l.SetMargins([4]float32{10, 20, 30, 40})
	require.NoError(t, l.SetTransform2D(f32.Vec2{-1, -1}, [2]int{200, 100}, 72))
	p = geom.TransformPoint(l.Transform(), f32.Vec3{0, 0, 0})
	assert.InDelta(t, -0.6, p[0], 1e-6)
	assert.InDelta(t, -0.4, p[1], 1e-6)
	//
	assert.Error(t, l.SetTransform2D(f32.Vec2{}, [2]int{0, 100}, 72))
	l.SetFontFace(nil)
	assert.Equal(t, core.EPRECONDITION, core.Code(l.SetTransform2D(f32.Vec2{}, [2]int{200, 100}, 72)))
}

func TestTransform3D(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	l := NewWithText("x", testFace(t))
	l.SetFontSize(32)
	require.NoError(t, l.SetTransform3D(f32.Vec3{1, 2, 3}, geom.Identity()))
	p := geom.TransformPoint(l.Transform(), f32.Vec3{1, 1, 1})
	assert.Equal(t, f32.Vec3{3, 4, 5}, p)
}

func TestSetColor(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	l := New()
	l.SetColor(color.NRGBA{R: 0xff, A: 0xff})
	assert.Equal(t, f32.Vec4{1, 0, 0, 1}, l.TextColor())
	l.SetText(nil)
	assert.NotNil(t, l.Text())
}
