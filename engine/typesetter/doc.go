/*
Package typesetter lays out labels into glyph vertex clouds.

Typesetting walks the code-points of a label's text, moving a pen along the
baseline. For every depictable glyph a vertex is appended to the cloud,
located relative to the pen. Lines end at line-feed code-points or, if word
wrap is enabled, at the last delimiter before a glyph would overflow the
label's line width. A word wider than the line width is broken between
characters, and a single glyph wider than the line width overflows an
otherwise empty line.

After every line has been completed, its vertices are shifted according to
the label's alignment. When all lines are done, the vertices are transformed
by the label's transform and colored with its text color.

Extent measures a label without producing any vertices. It runs the very same
line-breaking code as Typeset does, therefore both agree on the extent of a
label.

Delimiters

The following code-points are break opportunities for word wrapping:

    LF  SPACE  (  )  ,  -  .  /  <  >  [  ]

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package typesetter

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyll.typeset'.
func tracer() tracing.Trace {
	return tracing.Select("tyll.typeset")
}
