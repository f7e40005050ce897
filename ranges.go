package msgbody

import "fmt"

// Placeholder is the rune a mention occupies in the raw message text.
const Placeholder = '\uFFFC'

// Range is an annotation of a run of message text. Ranges are either of type
// StyleRange or MentionRange; ranges found by pattern detection are added
// internally during composition.
type Range interface {
	Span() Span
	kind() rangeKind
}

type rangeKind uint8

const (
	styleKind rangeKind = iota
	mentionKind
	linkKind
)

// StyleRange marks a run of text with a character style.
type StyleRange struct {
	Start  int
	Length int
	Style  Style
}

// Span returns the run of text the range annotates.
func (r StyleRange) Span() Span {
	return Span{Start: r.Start, Length: r.Length}
}

func (r StyleRange) kind() rangeKind { return styleKind }

func (r StyleRange) String() string {
	return fmt.Sprintf("%s[%d,%d]", r.Style, r.Start, r.Length)
}

// MentionRange marks a placeholder as a reference to another identity.
// Length is conventionally 1, covering a single placeholder rune.
type MentionRange struct {
	Start          int
	Length         int
	MentionID      string // identity of the mentioned contact
	ConversationID string // opaque, carried through to the segment
	DisplayText    string // replacement text; may be empty for unresolved mentions
}

// Span returns the run of text the range annotates.
func (r MentionRange) Span() Span {
	return Span{Start: r.Start, Length: r.Length}
}

func (r MentionRange) kind() rangeKind { return mentionKind }

func (r MentionRange) String() string {
	return fmt.Sprintf("@%s[%d,%d]", r.MentionID, r.Start, r.Length)
}

// linkRange is a range found by link detection. It has lowest precedence.
type linkRange struct {
	Start  int
	Length int
	URL    string
}

func (r linkRange) Span() Span {
	return Span{Start: r.Start, Length: r.Length}
}

func (r linkRange) kind() rangeKind { return linkKind }

var _ Range = StyleRange{}
var _ Range = MentionRange{}
var _ Range = linkRange{}

// --- Segment attributes ----------------------------------------------------

// Mention is the identity and resolved display name of a mention segment.
type Mention struct {
	ID             string
	ConversationID string
	DisplayText    string
	Resolved       bool // false if DisplayText is a fallback
}

// Link is a hyperlink found by pattern detection.
type Link struct {
	URL    string
	Source Span // position of the link within the raw text
}

// SpoilerID identifies a spoiler region by its position in the raw text.
// The position is taken after normalization: overlapping spoiler ranges are
// coalesced, and spoiler boundaries inside a mention are widened to the
// mention's boundaries. Clients therefore take IDs from Result.Spoilers
// rather than from the declared ranges.
type SpoilerID struct {
	Start  int
	Length int
}

func (id SpoilerID) String() string {
	return fmt.Sprintf("spoiler[%d,%d]", id.Start, id.Length)
}

// --- Span ------------------------------------------------------------------

// Span is a run of text, given as start position and length in runes.
type Span struct {
	Start  int
	Length int
}

// End returns the position after the last rune of the span.
func (s Span) End() int {
	return s.Start + s.Length
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End())
}

// span is a half-open interval [l, r) used during resolution.
type span struct {
	l int
	r int
}

func (spn span) void() bool {
	return spn.r <= spn.l
}

func (spn span) len() int {
	if spn.void() {
		return 0
	}
	return spn.r - spn.l
}

func (spn span) overlaps(other span) bool {
	return spn.l < other.r && other.l < spn.r
}

// contained restricts spn to [0, n).
func (spn span) contained(n int) span {
	if spn.l < 0 {
		spn.l = 0
	}
	if spn.r > n {
		spn.r = n
	}
	return spn
}

func (spn span) export() Span {
	return Span{Start: spn.l, Length: spn.len()}
}
