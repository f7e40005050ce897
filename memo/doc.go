/*
Package memo caches composed message bodies.

Conversation views compose the same bodies over and over, e.g. when
scrolling. A Composer remembers results per message and returns them as
long as text, ranges and options are unchanged. Results are shared between
callers and must be treated as immutable.

Changes of the spoiler expansion state are detected: a cached result is only
returned if every one of its spoilers has the expansion state it has been
composed with. Changes of the display names delivered by a MentionResolver
are not detected; clients call Invalidate for messages mentioning a contact
whose name changed.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) The msgbody Authors

Please refer to the LICENSE file for details.
*/
package memo

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'msgbody'
func tracer() tracing.Trace {
	return tracing.Select("msgbody")
}
