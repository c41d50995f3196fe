package glyphcloud

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyll/core/font"
	"github.com/npillmayer/tyll/core/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f32"
)

type recordingUploader struct {
	uploads int
	last    []Vertex
	fail    bool
}

func (u *recordingUploader) Upload(vertices []Vertex, texture font.Texture) error {
	if u.fail {
		return errors.New("upload failed")
	}
	u.uploads++
	u.last = append([]Vertex(nil), vertices...)
	return nil
}

func vertexAt(x float32) Vertex {
	return Vertex{
		Origin:    f32.Vec3{x, 0, 0},
		Tangent:   f32.Vec3{2, 0, 0},
		Bitangent: f32.Vec3{0, 3, 0},
	}
}

func TestShiftAndColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyll.typeset")
	defer teardown()
	//
	c := New(nil)
	for i := 0; i < 4; i++ {
		assert.Equal(t, i, c.Append(vertexAt(float32(i))))
	}
	c.ShiftX(1, 3, 10)
	c.ShiftXY(3, 4, f32.Vec2{1, 1})
	c.SetColor(0, 2, f32.Vec4{1, 0, 0, 1})
	v := c.Vertices()
	assert.Equal(t, float32(0), v[0].Origin[0])
	assert.Equal(t, float32(11), v[1].Origin[0])
	assert.Equal(t, float32(12), v[2].Origin[0])
	assert.Equal(t, f32.Vec3{4, 1, 0}, v[3].Origin)
	assert.Equal(t, f32.Vec4{1, 0, 0, 1}, v[1].Color)
	assert.Equal(t, f32.Vec4{}, v[2].Color)
	c.Reset(10)
	assert.Equal(t, 0, c.Len())
}

func TestTransformRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyll.typeset")
	defer teardown()
	//
	c := New(nil)
	c.Append(vertexAt(1))
	// rotation by 90 degrees counter-clockwise, then scale by 2
	rot := f32.Mat4{
		0, -1, 0, 0,
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	m := geom.Scale(rot, f32.Vec3{2, 2, 2})
	c.TransformRange(0, 1, m)
	v := c.Vertices()[0]
	assert.Equal(t, f32.Vec3{0, 2, 0}, v.Origin)
	assert.Equal(t, f32.Vec3{0, 4, 0}, v.Tangent)
	assert.Equal(t, f32.Vec3{-6, 0, 0}, v.Bitangent)
}

func TestOptimize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyll.typeset")
	defer teardown()
	//
	c := New(nil)
	b := NewBuckets()
	for i, r := range "abcab" {
		c.Append(vertexAt(float32(i)))
		b.Add(font.GlyphIndex(r), i)
	}
	c.Append(vertexAt(99)) // not in any bucket
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []int{0, 3}, b.Indices('a'))
	assert.Nil(t, b.Indices('z'))
	c.Optimize(b)
	var xs []float32
	for _, v := range c.Vertices() {
		xs = append(xs, v.Origin[0])
	}
	assert.Equal(t, []float32{0, 3, 1, 4, 2, 99}, xs)
}

func TestOptimizeRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyll.typeset")
	defer teardown()
	//
	c := New(nil)
	b := NewBuckets()
	for i, r := range "zbaba" {
		c.Append(vertexAt(float32(i)))
		b.Add(font.GlyphIndex(r), i)
	}
	c.OptimizeRange(1, 4, b)
	var xs []float32
	for _, v := range c.Vertices() {
		xs = append(xs, v.Origin[0])
	}
	assert.Equal(t, []float32{0, 2, 1, 3, 4}, xs)
}

func TestUpdate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyll.typeset")
	defer teardown()
	//
	u := &recordingUploader{}
	c := New(u)
	c.Append(vertexAt(1))
	require.NoError(t, c.Update())
	require.NoError(t, c.Update())
	assert.Equal(t, 1, u.uploads, "unchanged cloud must not be uploaded again")
	assert.Len(t, u.last, 1)
	c.ShiftX(0, 1, 1)
	u.fail = true
	assert.Error(t, c.Update())
	u.fail = false
	require.NoError(t, c.Update())
	assert.Equal(t, 2, u.uploads)
	assert.NoError(t, New(nil).Update())
}

func TestBytes(t *testing.T) {
	c := New(nil)
	v := vertexAt(1.5)
	v.Color = f32.Vec4{0.25, 0.5, 0.75, 1}
	c.Append(v)
	c.Append(vertexAt(2))
	buf := c.Bytes()
	require.Len(t, buf, 2*Stride)
	float := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	assert.Equal(t, float32(1.5), float(0))
	assert.Equal(t, float32(2), float(3))
	assert.Equal(t, float32(3), float(7))
	colorOffset := Layout()[4].Offset / 4
	assert.Equal(t, float32(0.75), float(colorOffset+2))
	assert.Equal(t, float32(2), float(FloatsPerVertex))
	total := 0
	for _, a := range Layout() {
		total += a.Components
	}
	assert.Equal(t, FloatsPerVertex, total)
}
