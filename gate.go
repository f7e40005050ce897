package msgbody

import "unicode/utf8"

// DefaultSpoilerPlaceholder is shown in place of hidden spoiler content.
const DefaultSpoilerPlaceholder = "▒▒▒▒"

// ExpansionState tells the spoiler gate which spoilers the user has revealed.
type ExpansionState interface {
	IsExpanded(SpoilerID) bool
}

// Expansion is a plain mapping from spoiler identities to expansion flags.
// Spoilers without an entry are hidden. The nil value hides all spoilers.
type Expansion map[SpoilerID]bool

// IsExpanded is part of interface ExpansionState.
func (e Expansion) IsExpanded(id SpoilerID) bool {
	return e[id]
}

// ExpandAll is an ExpansionState with every spoiler revealed.
var ExpandAll ExpansionState = expandAll{}

type expandAll struct{}

func (expandAll) IsExpanded(SpoilerID) bool { return true }

// gate replaces every run of consecutive segments covered by the same hidden
// spoiler with a single opaque placeholder segment.
//
// Expansion is all-or-nothing per spoiler. Styles, mentions and links nested
// inside a hidden spoiler are suppressed; the original segments are retained
// in the placeholder's Concealed list.
func gate(segments []Segment, opts *Options) []Segment {
	state := opts.Spoilers
	placeholder := opts.SpoilerPlaceholder
	if placeholder == "" {
		placeholder = DefaultSpoilerPlaceholder
	}
	width := utf8.RuneCountInString(placeholder)
	gated := segments[:0:0]
	for i := 0; i < len(segments); {
		seg := segments[i]
		if seg.Spoiler == nil || (state != nil && state.IsExpanded(*seg.Spoiler)) {
			gated = append(gated, seg)
			i++
			continue
		}
		j := i + 1
		for j < len(segments) && segments[j].Spoiler != nil && *segments[j].Spoiler == *seg.Spoiler &&
			segments[j].Source.Start == segments[j-1].Source.End() {
			j++
		}
		concealed := make([]Segment, j-i)
		copy(concealed, segments[i:j])
		last := segments[j-1]
		gated = append(gated, Segment{
			Length: width,
			Source: Span{
				Start:  seg.Source.Start,
				Length: last.Source.End() - seg.Source.Start,
			},
			Text:          placeholder,
			Styles:        StylesOf(Spoiler),
			Spoiler:       seg.Spoiler,
			SpoilerHidden: true,
			Concealed:     concealed,
		})
		tracer().Debugf("msgbody: %v hidden, %d segments concealed", *seg.Spoiler, len(concealed))
		i = j
	}
	relayout(gated)
	return gated
}
