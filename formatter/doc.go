/*
Package formatter outputs composed message bodies.

Rendering message bodies is the job of the client application's view layer.
This package provides two reference renderers, mostly for tooling, tests
and terminal clients:

▪︎ Console writes a body to a terminal with a fixed width font, using escape
sequences for styles and first-fit line wrapping.

▪︎ HTML builds an HTML node tree for a body and renders it.

Both are driven by Output, which walks the style tree of a msgbody.Result
and calls a Format for every bracket and every run of text. Clients may
implement Format for other devices.

Line breaking follows UAX#14, display widths of characters follow UAX#11 and
are measured on grapheme clusters (UAX#29). Bi-directional text is output in
logical order.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) The msgbody Authors

Please refer to the LICENSE file for details.
*/
package formatter

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'msgbody'
func tracer() tracing.Trace {
	return tracing.Select("msgbody")
}
