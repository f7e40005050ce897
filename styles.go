package msgbody

import (
	"fmt"
	"strings"
)

// Style is a character style which may be applied to a run of message text.
//
// None is not a visible style. A None range cancels styles inherited from
// wider ranges within its span.
type Style uint8

// Styles a message body may carry
const (
	None Style = iota
	Bold
	Italic
	Strikethrough
	Monospace
	Spoiler
	styleCount
)

// Precedence is the canonical nesting order of style brackets, outermost first.
var Precedence = [...]Style{Spoiler, Strikethrough, Bold, Italic, Monospace}

func (s Style) valid() bool {
	return s < styleCount
}

func (s Style) String() string {
	switch s {
	case None:
		return "none"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Strikethrough:
		return "strikethrough"
	case Monospace:
		return "monospace"
	case Spoiler:
		return "spoiler"
	}
	return fmt.Sprintf("Style(%d)", s)
}

// --- Style sets ------------------------------------------------------------

// StyleSet is a set of active styles. It never contains None.
type StyleSet uint8

// StylesOf creates a set from a list of styles. None is ignored.
func StylesOf(styles ...Style) StyleSet {
	var set StyleSet
	for _, s := range styles {
		set = set.Add(s)
	}
	return set
}

func bit(s Style) StyleSet {
	if s == None || !s.valid() {
		return 0
	}
	return 1 << (s - 1)
}

// Add returns the set with style s added.
func (set StyleSet) Add(s Style) StyleSet {
	return set | bit(s)
}

// Minus returns the set with style s removed.
func (set StyleSet) Minus(s Style) StyleSet {
	return set & ^bit(s)
}

// Contains reports whether s is a member of the set.
func (set StyleSet) Contains(s Style) bool {
	b := bit(s)
	return b != 0 && set&b != 0
}

// IsEmpty reports whether no style is active.
func (set StyleSet) IsEmpty() bool {
	return set == 0
}

// Styles returns the members of the set in canonical precedence order.
func (set StyleSet) Styles() []Style {
	styles := make([]Style, 0, len(Precedence))
	for _, s := range Precedence {
		if set.Contains(s) {
			styles = append(styles, s)
		}
	}
	return styles
}

func (set StyleSet) String() string {
	if set == 0 {
		return "plain"
	}
	names := make([]string, 0, len(Precedence))
	for _, s := range set.Styles() {
		names = append(names, s.String())
	}
	return strings.Join(names, "+")
}
