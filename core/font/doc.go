/*
Package font holds the metrics model of bitmap fonts: glyphs placed in a
texture atlas, font-wide metrics and kerning.

A Face is built once by a loader (see package fntload) or baked from an
x/image font face (FromXFace), and is read-only afterwards. It may then be
shared between any number of concurrent typesetting calls.

All metrics are given in the font's native point size ("font-face space").
Glyph placement vectors are derived once per glyph, whenever the glyph is
upserted or the face's atlas geometry changes, so that layout only has to add
a pen position.

The texture atlas itself is owned by a rendering collaborator; a Face only
keeps an opaque Texture handle, requested from a TextureFactory.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyll.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyll.fonts")
}
