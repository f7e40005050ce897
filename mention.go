package msgbody

import "unicode/utf8"

// DefaultUnknownContact is the display text for mentions which cannot be resolved.
const DefaultUnknownContact = "Unknown"

// MentionResolver looks up display names for mentions which arrive without
// a replacement text.
type MentionResolver interface {
	DisplayName(mentionID string) (string, bool)
}

// MentionResolverFunc adapts a function to interface MentionResolver.
type MentionResolverFunc func(mentionID string) (string, bool)

// DisplayName calls f(mentionID).
func (f MentionResolverFunc) DisplayName(mentionID string) (string, bool) {
	return f(mentionID)
}

// substitute converts pieces of the raw text into segments, replacing the
// placeholder of every mention with its display text.
//
// Pieces are processed left to right, so every segment after a mention is
// shifted by the difference in length between the display text and the
// placeholder span. Styles of the placeholder apply to the complete display text.
func substitute(pieces []piece, text []rune, opts *Options) []Segment {
	segments := make([]Segment, 0, len(pieces))
	pos := 0
	for _, p := range pieces {
		assert(!p.spn.void(), "substitute: empty piece")
		seg := Segment{
			Start:   pos,
			Source:  p.spn.export(),
			Styles:  p.styles,
			Spoiler: p.spoiler,
		}
		if p.link != nil {
			seg.Link = &Link{URL: p.link.link.URL, Source: p.link.spn.export()}
		}
		if p.mention != nil {
			m := resolveMention(p.mention.mention, opts)
			seg.Mention = m
			seg.Text = m.DisplayText
			seg.Length = utf8.RuneCountInString(m.DisplayText)
			tracer().Debugf("msgbody: mention %s at %v shifts by %d", m.ID, seg.Source, seg.Length-p.spn.len())
		} else {
			seg.Text = string(text[p.spn.l:p.spn.r])
			seg.Length = p.spn.len()
		}
		pos += seg.Length
		segments = append(segments, seg)
	}
	return segments
}

func resolveMention(r *MentionRange, opts *Options) *Mention {
	m := &Mention{
		ID:             r.MentionID,
		ConversationID: r.ConversationID,
		DisplayText:    r.DisplayText,
		Resolved:       r.DisplayText != "",
	}
	if m.Resolved {
		return m
	}
	if opts.MentionResolver != nil {
		if name, ok := opts.MentionResolver.DisplayName(r.MentionID); ok && name != "" {
			m.DisplayText, m.Resolved = name, true
			return m
		}
	}
	tracer().Debugf("msgbody: mention %q is unresolved", r.MentionID)
	m.DisplayText = opts.UnknownContact
	if m.DisplayText == "" {
		m.DisplayText = DefaultUnknownContact
	}
	return m
}
