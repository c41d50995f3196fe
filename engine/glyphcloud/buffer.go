package glyphcloud

import (
	"encoding/binary"
	"math"
)

// Attribute describes a vertex attribute within the buffer created by Bytes.
type Attribute struct {
	Name       string
	Components int // number of float32 components
	Offset     int // in bytes, from start of vertex
}

// FloatsPerVertex is the number of float32 values per vertex in a buffer.
const FloatsPerVertex = 17

// Stride is the size of a vertex in a buffer, in bytes.
const Stride = FloatsPerVertex * 4

var layout = []Attribute{
	{Name: "origin", Components: 3, Offset: 0},
	{Name: "tangent", Components: 3, Offset: 12},
	{Name: "bitangent", Components: 3, Offset: 24},
	{Name: "uvRect", Components: 4, Offset: 36},
	{Name: "color", Components: 4, Offset: 52},
}

// Layout describes the vertex attributes of buffers created by Bytes.
func Layout() []Attribute {
	l := make([]Attribute, len(layout))
	copy(l, layout)
	return l
}

// Bytes packs the vertices into an interleaved buffer of little endian
// float32 values.
func (c *Cloud) Bytes() []byte {
	buf := make([]byte, len(c.vertices)*Stride)
	off := 0
	put := func(values ...float32) {
		for _, f := range values {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
			off += 4
		}
	}
	for _, v := range c.vertices {
		put(v.Origin[:]...)
		put(v.Tangent[:]...)
		put(v.Bitangent[:]...)
		put(v.UVRect[:]...)
		put(v.Color[:]...)
	}
	return buf
}
