/*
Package label holds labels, the requests for typesetting.

A label references a text and a font face, and carries the styling parameters
for layout: font size, word wrap, alignment, line anchor, text color, margins
and a transform from font-face space into the target space of the label.

Labels do not own their font face, and texts may be shared between labels.
A label is read, never modified, by the typesetter.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package label

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyll.labels'.
func tracer() tracing.Trace {
	return tracing.Select("tyll.labels")
}
