/*
Package fontregistry manages a registry for loaded font faces.

Faces are stored under normalized names (see NormalizeFontname). Clients
asking for a face which has not been loaded receive a fallback face, together
with an error.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'tyll.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyll.fonts")
}
