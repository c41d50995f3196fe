/*
Package raster renders glyph vertex clouds into images.

Raster is a rendering collaborator working in CPU memory. It creates atlas
textures as in-memory images and receives vertex uploads from clouds. Every
vertex is drawn as a quad: the glyph's sub-rectangle of the atlas is mapped
through the affine transform spanned by the vertex's origin and edges,
sampled bi-linearly and used as a mask for the vertex color.

Vertices are projected orthographically, i.e. the z-coordinate is ignored.
Clients provide the mapping from the (x, y)-plane to pixels, see NDCToPixel
and PixelOrigin.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package raster

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyll.raster'.
func tracer() tracing.Trace {
	return tracing.Select("tyll.raster")
}
