/*
Package html reads labels from HTML documents styled with CSS.

Every <label> element of a document results in a label. Its text is the
element's text content with white-space collapsed; a <br> element starts a
new line. Styles are taken from a stylesheet and from style attributes and are
inherited from enclosing elements. Rules of a stylesheet apply in order of
appearance, a style attribute overrides all rules. Selector specificity is not
considered.

Supported properties are:

    font-size     dimension, or percentage of the inherited size
    line-width    dimension; 'width' is a synonym
    white-space   normal | pre-wrap (wrap lines), nowrap | pre (do not wrap)
    word-wrap     break-word | normal (wrap lines), none (do not wrap)
    text-align    left | center | right | start | end
    line-anchor   ascent | center | baseline | descent
    color         #rgb, #rrggbb, #rrggbbaa, rgb(…), rgba(…) or a color name
    opacity       fraction or percentage
    margin        1 to 4 dimensions, in CSS order

Properties with invalid values are ignored and traced.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyll.input'.
func tracer() tracing.Trace {
	return tracing.Select("tyll.input")
}
