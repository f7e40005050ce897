package msgbody

import (
	"fmt"
	"strings"
)

// Segment is a maximal run of rendered text sharing one combination of active
// styles, mention, link and spoiler.
type Segment struct {
	Start         int        // position within the rendered text, in runes
	Length        int        // length of Text, in runes
	Source        Span       // span of the raw text this segment has been produced from
	Text          string     // rendered text
	Styles        StyleSet   // active styles
	Mention       *Mention   // non-nil for mentions
	Link          *Link      // non-nil for detected links
	Spoiler       *SpoilerID // spoiler region the segment lies in, or nil
	SpoilerHidden bool       // segment is an opaque spoiler placeholder
	Pending       bool       // marker for text still being downloaded

	// Concealed holds the segments a hidden spoiler placeholder stands for.
	// Renderers must not display them.
	Concealed []Segment
}

// End returns the position after the segment within the rendered text.
func (seg Segment) End() int {
	return seg.Start + seg.Length
}

func (seg Segment) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d+%d{%s", seg.Start, seg.Length, seg.Styles)
	if seg.Mention != nil {
		fmt.Fprintf(&b, " @%s", seg.Mention.ID)
	}
	if seg.Link != nil {
		fmt.Fprintf(&b, " link=%s", seg.Link.URL)
	}
	if seg.SpoilerHidden {
		b.WriteString(" hidden")
	}
	if seg.Pending {
		b.WriteString(" pending")
	}
	fmt.Fprintf(&b, "}%q", seg.Text)
	return b.String()
}

// relayout assigns consecutive start positions to a list of segments.
func relayout(segments []Segment) {
	pos := 0
	for i := range segments {
		segments[i].Start = pos
		pos += segments[i].Length
	}
}
