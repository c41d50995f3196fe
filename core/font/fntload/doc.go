/*
Package fntload loads bitmap fonts from text font descriptions and their
texture atlas pages.

A font description is a line-oriented text file. Every line starts with a tag,
followed by key=value pairs separated by blanks. Values may be quoted and may
then contain blanks. The tags understood are

	info     size, padding, face
	common   lineHeight, base, scaleW, scaleH
	page     file
	char     id, x, y, width, height, xoffset, yoffset, xadvance
	kerning  first, second, amount

All other tags are ignored. Atlas pages are single-channel rasters with a
.raw suffix, holding scaleW × scaleH bytes, top row first. Pages in PNG, BMP
or TIFF format are accepted as well, unless configuration key
"atlas-raw-only" is set.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fntload

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyll.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("tyll.fonts")
}
