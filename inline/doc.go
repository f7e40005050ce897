/*
Package inline reads annotated message bodies from a small HTML vocabulary.

Message bodies usually arrive as a raw text plus a list of ranges. For tests,
fixtures and tooling it is convenient to write them as markup instead:

	<b>bold <i>and italic</i></b>, <spoiler>hidden</spoiler>,
	<mention data-id="0ca40892" data-name="Bender"></mention> and <code>x := 1</code>

Parse converts such a fragment to the raw text and ranges expected by
msgbody.Compose. Nested elements produce overlapping ranges; mentions are
replaced by the object replacement character U+FFFC.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) The msgbody Authors

Please refer to the LICENSE file for details.
*/
package inline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'msgbody'
func tracer() tracing.Trace {
	return tracing.Select("msgbody")
}
