package msgbody

import (
	"sort"
)

// annotation is a range which has been validated against the text.
type annotation struct {
	spn     span
	index   int // declaration order, used for tie-breaking
	kind    rangeKind
	style   Style
	mention *MentionRange
	link    *linkRange
}

// normalized holds the surviving ranges of a message, classified by kind.
type normalized struct {
	n        int          // text length in runes
	styles   []annotation // style ranges, including None, in declaration order
	mentions []annotation // mention ranges, sorted by position, non-overlapping
}

// normalize validates and clips raw ranges against a text of n runes.
//
// Ranges starting at or after the end of the text or having a length ≤ 0 are
// dropped. Ranges reaching past the end of the text are clipped, ranges with a
// negative start are clipped to start at 0. Invalid ranges are silently
// discarded, as they usually stem from stale annotation data. Only style
// values outside the defined set are reported as an error.
func normalize(ranges []Range, n int) (normalized, error) {
	norm := normalized{n: n}
	for i, rng := range ranges {
		if rng == nil {
			tracer().Debugf("msgbody: range #%d is nil, dropped", i)
			continue
		}
		s := rng.Span()
		if s.Length <= 0 || s.Start >= n {
			tracer().Debugf("msgbody: range #%d %v is degenerate, dropped", i, s)
			continue
		}
		spn := span{s.Start, s.End()}.contained(n)
		if spn.void() {
			tracer().Debugf("msgbody: range #%d %v is out of bounds, dropped", i, s)
			continue
		}
		a := annotation{spn: spn, index: i, kind: rng.kind()}
		switch r := rng.(type) {
		case StyleRange:
			if !r.Style.valid() {
				tracer().Errorf("msgbody: range #%d has illegal style %d", i, r.Style)
				return normalized{}, ErrIllegalStyle
			}
			a.style = r.Style
			norm.styles = append(norm.styles, a)
		case MentionRange:
			m := r
			a.mention = &m
			norm.mentions = append(norm.mentions, a)
		default:
			tracer().Debugf("msgbody: range #%d of type %T is not an annotation, dropped", i, rng)
		}
	}
	norm.mentions = dropOverlappingMentions(norm.mentions)
	for i := range norm.styles {
		norm.styles[i].spn = norm.snapToMentions(norm.styles[i].spn)
	}
	return norm, nil
}

// dropOverlappingMentions sorts mentions by position and removes every mention
// overlapping a mention declared before it. Mentions are atomic and
// cannot share text.
func dropOverlappingMentions(mentions []annotation) []annotation {
	if len(mentions) < 2 {
		return mentions
	}
	sort.SliceStable(mentions, func(i, j int) bool {
		a, b := mentions[i], mentions[j]
		return a.spn.l < b.spn.l || (a.spn.l == b.spn.l && a.index < b.index)
	})
	kept := mentions[:0]
	for _, m := range mentions {
		if len(kept) > 0 && kept[len(kept)-1].spn.overlaps(m.spn) {
			tracer().Debugf("msgbody: mention #%d overlaps mention #%d, dropped",
				m.index, kept[len(kept)-1].index)
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

// mentionAt returns the index of the mention containing position pos strictly
// inside, i.e. not at its start. Returns -1 if there is none.
func (norm normalized) mentionAt(pos int) int {
	i := sort.Search(len(norm.mentions), func(i int) bool {
		return norm.mentions[i].spn.r > pos
	})
	if i < len(norm.mentions) && norm.mentions[i].spn.l < pos {
		return i
	}
	return -1
}

// snapToMentions widens a span so that none of its boundaries lies strictly
// inside a mention.
func (norm normalized) snapToMentions(spn span) span {
	if m := norm.mentionAt(spn.l); m >= 0 {
		spn.l = norm.mentions[m].spn.l
	}
	if m := norm.mentionAt(spn.r); m >= 0 {
		spn.r = norm.mentions[m].spn.r
	}
	return spn
}

// overlapsMention reports whether spn shares at least one rune with a mention.
func (norm normalized) overlapsMention(spn span) bool {
	i := sort.Search(len(norm.mentions), func(i int) bool {
		return norm.mentions[i].spn.r > spn.l
	})
	return i < len(norm.mentions) && norm.mentions[i].spn.l < spn.r
}

// addLinks adds detected links as lowest-precedence annotations. Links
// touching a mention are discarded.
func (norm *normalized) addLinks(links []linkRange) []annotation {
	var annotations []annotation
	for i, l := range links {
		spn := span{l.Start, l.Start + l.Length}.contained(norm.n)
		if spn.void() {
			continue
		}
		if norm.overlapsMention(spn) {
			tracer().Debugf("msgbody: link %q overlaps a mention, dropped", l.URL)
			continue
		}
		link := l
		annotations = append(annotations, annotation{
			spn:   spn,
			index: -1 - i, // detected ranges are declared before any explicit range
			kind:  linkKind,
			link:  &link,
		})
	}
	return annotations
}
