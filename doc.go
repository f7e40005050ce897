/*
Package msgbody composes the body of a chat message into a rendering plan.

A message body arrives as plain text together with annotation ranges, which
are produced independently of each other: formatting applied by the sender,
mentions relayed by the server, links and emoji detected locally. Ranges may
overlap, nest, cross each other's boundaries or be plain garbage (zero length,
out of bounds, computed against an older version of the text). Compose
resolves all of this into an ordered sequence of disjoint segments and a
tree of style brackets a renderer can walk without further interval math.

	res, err := msgbody.Compose("Abracadabra Open Sesame", []msgbody.Range{
	    msgbody.StyleRange{Start: 0, Length: 11, Style: msgbody.Bold},
	    msgbody.StyleRange{Start: 10, Length: 10, Style: msgbody.Italic},
	}, nil)

Positions

All offsets are counted in Unicode scalar values (runes) of the text, not in
bytes and not in grapheme clusters. Mentions occupy a placeholder rune
(usually U+FFFC) which is replaced by a display name during composition.

Spoilers

Spoiler ranges render as an opaque placeholder until the caller flags them
as expanded. Expansion state is owned by the caller and handed in with each
call (see ExpansionState and package spoiler); the composition itself is a
pure function and holds no state between calls.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) The msgbody Authors

Please refer to the LICENSE file for details.
*/
package msgbody

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'msgbody'
func tracer() tracing.Trace {
	return tracing.Select("msgbody")
}

// Error is an error type for the msgbody module
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrInvalidText is flagged if a message text is not valid UTF-8.
const ErrInvalidText = Error("message text is not valid UTF-8")

// ErrIllegalStyle is flagged for style values outside of the defined set of styles.
const ErrIllegalStyle = Error("illegal style")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = Error("illegal arguments")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
