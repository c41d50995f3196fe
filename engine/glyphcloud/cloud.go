package glyphcloud

import (
	"fmt"

	"github.com/npillmayer/tyll/core/font"
	"github.com/npillmayer/tyll/core/geom"
	"golang.org/x/image/math/f32"
)

// Vertex is a glyph quad in target space.
type Vertex struct {
	Origin    f32.Vec3 // lower left corner
	Tangent   f32.Vec3 // lower edge
	Bitangent f32.Vec3 // left edge
	UVRect    f32.Vec4 // lower left and upper right in atlas
	Color     f32.Vec4 // RGBA
}

func (v Vertex) String() string {
	return fmt.Sprintf("[o=%v t=%v b=%v uv=%v]", v.Origin, v.Tangent, v.Bitangent, v.UVRect)
}

// Uploader is implemented by rendering collaborators which keep a copy of a
// cloud's vertices, e.g. in a GPU buffer.
type Uploader interface {
	Upload(vertices []Vertex, texture font.Texture) error
}

// Cloud is a sequence of glyph vertices, together with the texture atlas
// they refer to. The zero value is an empty cloud.
type Cloud struct {
	vertices []Vertex
	texture  font.Texture
	uploader Uploader
	dirty    bool
}

// New creates an empty cloud. uploader may be nil.
func New(uploader Uploader) *Cloud {
	return &Cloud{uploader: uploader}
}

// Vertices returns the vertices of the cloud. Clients must not modify them.
func (c *Cloud) Vertices() []Vertex {
	return c.vertices
}

// Len returns the number of vertices.
func (c *Cloud) Len() int {
	return len(c.vertices)
}

// Texture returns the atlas of the font the vertices have been typeset with.
func (c *Cloud) Texture() font.Texture {
	return c.texture
}

// SetTexture sets the atlas the vertices refer to.
func (c *Cloud) SetTexture(t font.Texture) {
	if c.texture != t {
		c.texture = t
		c.dirty = true
	}
}

// SetUploader sets the hook called by Update.
func (c *Cloud) SetUploader(u Uploader) {
	c.uploader = u
	c.dirty = true
}

// Reset removes all vertices, keeping the allocated storage. At least capacity
// vertices may be appended without re-allocation.
func (c *Cloud) Reset(capacity int) {
	if cap(c.vertices) < capacity {
		c.vertices = make([]Vertex, 0, capacity)
	} else {
		c.vertices = c.vertices[:0]
	}
	c.dirty = true
}

// Append adds a vertex and returns its index.
func (c *Cloud) Append(v Vertex) int {
	c.vertices = append(c.vertices, v)
	c.dirty = true
	return len(c.vertices) - 1
}

// ShiftX moves the vertices with index from ≤ i < to horizontally.
func (c *Cloud) ShiftX(from, to int, dx float32) {
	if dx == 0 {
		return
	}
	for i := from; i < to; i++ {
		c.vertices[i].Origin[0] += dx
	}
	c.dirty = true
}

// ShiftXY moves the vertices with index from ≤ i < to.
func (c *Cloud) ShiftXY(from, to int, d f32.Vec2) {
	for i := from; i < to; i++ {
		c.vertices[i].Origin[0] += d[0]
		c.vertices[i].Origin[1] += d[1]
	}
	c.dirty = true
}

// TransformRange transforms the vertices with index from ≤ i < to by m.
// The corners spanned by origin and edges are transformed, and the edges are
// re-derived from them. Thus rotation, scaling and shearing are carried
// correctly.
func (c *Cloud) TransformRange(from, to int, m f32.Mat4) {
	if geom.IsIdentity(m) {
		return
	}
	for i := from; i < to; i++ {
		v := &c.vertices[i]
		ll := geom.TransformPoint(m, v.Origin)
		lr := geom.TransformPoint(m, geom.Add3(v.Origin, v.Tangent))
		ul := geom.TransformPoint(m, geom.Add3(v.Origin, v.Bitangent))
		v.Origin = ll
		v.Tangent = geom.Sub3(lr, ll)
		v.Bitangent = geom.Sub3(ul, ll)
	}
	c.dirty = true
}

// SetColor sets the color of the vertices with index from ≤ i < to.
func (c *Cloud) SetColor(from, to int, color f32.Vec4) {
	for i := from; i < to; i++ {
		c.vertices[i].Color = color
	}
	c.dirty = true
}

// Optimize re-orders the vertices, grouping them by glyph in ascending
// order of glyph indices. This improves texture cache locality during
// rendering. Vertices not contained in any bucket are moved to the end.
func (c *Cloud) Optimize(buckets *Buckets) {
	c.OptimizeRange(0, len(c.vertices), buckets)
}

// OptimizeRange re-orders the vertices with index from ≤ i < to like Optimize
// does. Bucket entries outside the range are ignored, vertices outside the
// range stay in place.
func (c *Cloud) OptimizeRange(from, to int, buckets *Buckets) {
	if buckets == nil || buckets.Len() == 0 || to-from < 2 {
		return
	}
	ordered := make([]Vertex, 0, to-from)
	seen := make([]bool, to-from)
	buckets.Each(func(g font.GlyphIndex, indices []int) {
		for _, i := range indices {
			if i >= from && i < to && !seen[i-from] {
				ordered = append(ordered, c.vertices[i])
				seen[i-from] = true
			}
		}
	})
	for i := from; i < to; i++ {
		if !seen[i-from] {
			ordered = append(ordered, c.vertices[i])
		}
	}
	copy(c.vertices[from:to], ordered)
	c.dirty = true
	tracer().Debugf("optimized %d vertices in %d buckets", len(ordered), buckets.Len())
}

// Update hands the vertices to the uploader, if they changed since the
// last update.
func (c *Cloud) Update() error {
	if !c.dirty || c.uploader == nil {
		return nil
	}
	if err := c.uploader.Upload(c.vertices, c.texture); err != nil {
		return err
	}
	c.dirty = false
	return nil
}
