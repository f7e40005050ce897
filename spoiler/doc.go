/*
Package spoiler keeps track of the spoilers a user has revealed.

Composing a message body is stateless: hidden spoilers are rendered as
placeholders unless the options of a composition carry an expansion state
revealing them. A Session is such a state, shared between the rendering
layer, which requests expansions, and the code composing bodies.

	session := spoiler.NewSession(ctx)
	opts := msgbody.DefaultOptions()
	opts.Spoilers = session
	opts.OnExpandSpoiler = session.Handler()
	events, _ := session.Subscribe(ctx)
	for range events {
	    res, _ = msgbody.Compose(text, ranges, opts)  // re-compose on expansion
	    ...
	}

Expansions are all-or-nothing per spoiler and never revert.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) The msgbody Authors

Please refer to the LICENSE file for details.
*/
package spoiler

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'msgbody'
func tracer() tracing.Trace {
	return tracing.Select("msgbody")
}
