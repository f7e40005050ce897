package msgbody

import (
	"iter"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/amersulieman/msgbody/detect"
)

// Options control the composition of a message body. The zero value is
// usable: links and jumbo emoji are detected, all spoilers are hidden,
// unresolvable mentions display as DefaultUnknownContact.
type Options struct {
	DisableLinks     bool           // do not detect links
	DisableJumbomoji bool           // do not classify emoji-only bodies
	Spoilers         ExpansionState // revealed spoilers; nil hides every spoiler

	// MentionResolver is consulted for mentions without a display text.
	MentionResolver MentionResolver
	// UnknownContact is displayed for mentions the resolver cannot name.
	UnknownContact string
	// SpoilerPlaceholder is displayed in place of hidden spoilers.
	SpoilerPlaceholder string

	// TextPending is set while the full text of a long message is still
	// being downloaded. A segment with PendingMarker is appended to the body.
	TextPending   bool
	PendingMarker string

	// OnExpandSpoiler is called by Result.ExpandSpoiler. Clients usually
	// record the expansion and call Compose again.
	OnExpandSpoiler func(SpoilerID)
}

// DefaultPendingMarker is appended to bodies whose full text is pending.
const DefaultPendingMarker = "\u2026"

// DefaultOptions returns the options used if Compose is called with nil options.
func DefaultOptions() *Options {
	return &Options{
		UnknownContact:     DefaultUnknownContact,
		SpoilerPlaceholder: DefaultSpoilerPlaceholder,
		PendingMarker:      DefaultPendingMarker,
	}
}

// Result is a composed message body, ready to be handed to a rendering layer.
// Results may be shared between callers (see WithExpandHandler) and are
// treated as read-only.
type Result struct {
	Text     string           // rendered text, after substitution and spoiler gating
	Segments []Segment        // ordered, disjoint segments covering Text
	Tree     *Node            // segments nested into style brackets
	Jumbo    detect.JumboTier // size class for emoji-only bodies
	Spoilers []SpoilerID      // spoiler regions of the body, in text order
	Pending  bool             // the last segment is a pending marker

	onExpand func(SpoilerID)
}

// Compose resolves a raw text and its ranges into a Result. opts may be nil,
// in which case DefaultOptions are used.
//
// Compose does not hold any state between calls. To reveal a spoiler, clients
// change the expansion state of opts.Spoilers and compose again.
func Compose(text string, ranges []Range, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if !utf8.ValidString(text) {
		tracer().Errorf("msgbody: text is not valid UTF-8")
		return nil, ErrInvalidText
	}
	if !utf8.ValidString(opts.UnknownContact) || !utf8.ValidString(opts.SpoilerPlaceholder) ||
		!utf8.ValidString(opts.PendingMarker) {
		tracer().Errorf("msgbody: options contain invalid UTF-8")
		return nil, ErrIllegalArguments
	}
	runes := []rune(text)
	norm, err := normalize(ranges, len(runes))
	if err != nil {
		return nil, err
	}
	var links []annotation
	if !opts.DisableLinks {
		links = norm.addLinks(detectLinks(text))
	}
	regions := spoilerRegions(norm.styles)
	pieces := resolve(norm, links, regions)
	segments := gate(substitute(pieces, runes, opts), opts)
	if opts.TextPending {
		segments = appendPending(segments, len(runes), opts.PendingMarker)
	}
	res := &Result{
		Segments: segments,
		Tree:     buildTree(segments),
		Spoilers: regions,
		Pending:  opts.TextPending,
		onExpand: opts.OnExpandSpoiler,
	}
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
	}
	res.Text = b.String()
	if !opts.DisableJumbomoji {
		res.Jumbo = detect.Jumbo(text)
	}
	tracer().Infof("msgbody: composed %d runes into %d segments, %d spoilers, jumbo=%s",
		len(runes), len(segments), len(regions), res.Jumbo)
	return res, nil
}

// appendPending appends a marker segment for text which has not been
// downloaded yet. The marker covers no raw text.
func appendPending(segments []Segment, n int, marker string) []Segment {
	if marker == "" {
		marker = DefaultPendingMarker
	}
	segments = append(segments, Segment{
		Length:  utf8.RuneCountInString(marker),
		Source:  Span{Start: n},
		Text:    marker,
		Pending: true,
	})
	relayout(segments)
	return segments
}

func detectLinks(text string) []linkRange {
	found := detect.Links(text)
	if len(found) == 0 {
		return nil
	}
	links := make([]linkRange, len(found))
	for i, l := range found {
		links[i] = linkRange{Start: l.Start, Length: l.Length, URL: l.URL}
	}
	return links
}

// ExpandSpoiler asks the client to reveal a spoiler, by calling
// Options.OnExpandSpoiler. The Result itself does not change. Unknown
// spoiler IDs are ignored.
func (res *Result) ExpandSpoiler(id SpoilerID) {
	if res.onExpand == nil || !res.HasSpoiler(id) {
		return
	}
	res.onExpand(id)
}

// WithExpandHandler returns a shallow copy of the result, with
// ExpandSpoiler calling f.
func (res *Result) WithExpandHandler(f func(SpoilerID)) *Result {
	r := *res
	r.onExpand = f
	return &r
}

// HasSpoiler returns true if id identifies a spoiler region of the body.
func (res *Result) HasSpoiler(id SpoilerID) bool {
	return slices.Contains(res.Spoilers, id)
}

// PlainText returns the rendered text with every spoiler revealed. A pending
// marker is not part of the plain text.
func (res *Result) PlainText() string {
	var b strings.Builder
	for _, seg := range res.Segments {
		if seg.Pending {
			continue
		}
		if !seg.SpoilerHidden {
			b.WriteString(seg.Text)
			continue
		}
		for _, c := range seg.Concealed {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

// Leaves iterates over the segments of the result, in text order.
func (res *Result) Leaves() iter.Seq[*Segment] {
	return res.Tree.Leaves()
}
