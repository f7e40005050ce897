/*
Package itemized iterates over the style runs of a composed message body.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) The msgbody Authors

Please refer to the LICENSE file for details.
*/
package itemized

import "github.com/amersulieman/msgbody"

// Iterator steps through the segments of a composed body:
//
//	it := itemized.IterateResult(res)
//	for it.Next() {
//	    styles, from, to := it.Styles()
//	    …
//	}
type Iterator struct {
	segments []msgbody.Segment
	inx      int
}

// IterateResult iterates over the segments of a result as they are
// displayed, i.e. with hidden spoilers as placeholders.
func IterateResult(res *msgbody.Result) *Iterator {
	if res == nil {
		return &Iterator{}
	}
	return &Iterator{segments: res.Segments}
}

// IterateRevealed iterates over the segments of a result with every hidden
// spoiler replaced by the segments it conceals. Positions are those of the
// concealed segments, i.e. they are not consecutive after a hidden spoiler.
func IterateRevealed(res *msgbody.Result) *Iterator {
	if res == nil {
		return &Iterator{}
	}
	segments := make([]msgbody.Segment, 0, len(res.Segments))
	for _, seg := range res.Segments {
		if seg.SpoilerHidden {
			segments = append(segments, seg.Concealed...)
			continue
		}
		segments = append(segments, seg)
	}
	return &Iterator{segments: segments}
}

// Next advances the iterator. It returns false if no segments are left.
func (it *Iterator) Next() bool {
	if it.inx >= len(it.segments) {
		return false
	}
	it.inx++
	return true
}

// Segment returns the segment at the current iterator position.
func (it *Iterator) Segment() msgbody.Segment {
	if it.inx == 0 {
		return msgbody.Segment{}
	}
	return it.segments[it.inx-1]
}

// Styles returns the styles at the current iterator position, together with
// the text indices [from…to) of the style run.
func (it *Iterator) Styles() (msgbody.StyleSet, int, int) {
	if it.inx == 0 {
		return 0, 0, 0
	}
	s := it.segments[it.inx-1]
	return s.Styles, s.Start, s.End()
}
