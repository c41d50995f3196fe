/*
Package glyphcloud holds glyph vertex clouds, the output of typesetting.

A cloud is a flat sequence of vertices, one for every depictable glyph of the
labels typeset into it. Every vertex describes a textured quad by its lower
left corner, two edge vectors and the quad's rectangle in the font's texture
atlas. Vertices are addressed by index only.

Clouds are handed to a rendering collaborator, which draws every vertex as a
quad (usually by expanding it in a geometry shader). Bytes and Layout support
uploading the vertices to a GPU buffer.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphcloud

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyll.typeset'.
func tracer() tracing.Trace {
	return tracing.Select("tyll.typeset")
}
