/*
Package detect finds implicit annotations in the raw text of a message body.

Two features are detected: hyperlink-like substrings, which become link
ranges of lowest precedence, and emoji-only bodies, which are classified
into a size tier for "jumbo" display.

Both detectors operate on the raw text, with mention placeholders (U+FFFC)
still in place. Placeholders never belong to a link and are ignored by the
emoji classification.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) The msgbody Authors

Please refer to the LICENSE file for details.
*/
package detect

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'msgbody'
func tracer() tracing.Trace {
	return tracing.Select("msgbody")
}
