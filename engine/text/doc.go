/*
Package text holds text buffers for labels.

A Text is a sequence of Unicode code-points, together with the code-point to
be interpreted as a line feed. Texts may be large and are shared by pointer
between labels. While a text is being typeset, it must not be modified.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package text

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyll.labels'.
func tracer() tracing.Trace {
	return tracing.Select("tyll.labels")
}
