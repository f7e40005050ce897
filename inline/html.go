package inline

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/amersulieman/msgbody"
	"golang.org/x/net/html"
)

// Parse reads an HTML fragment from input and returns its textual content
// together with the ranges expressed by its elements. See StyleFromHTML for
// the supported elements. Mentions are written as
//
//	<mention data-id="…" data-name="…"></mention>
//
// If data-name is missing, the content of the element is used as the
// display name. Line breaks (<br>) produce newlines, other elements
// contribute their content only.
func Parse(input io.Reader) (string, []msgbody.Range, error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return "", nil, fmt.Errorf("inline: cannot parse message markup: %w", err)
	}
	c := &collector{}
	for _, n := range nodes {
		c.collect(n)
	}
	text, ranges := c.result()
	return text, ranges, nil
}

// InnerText collects the textual content and ranges of an HTML element and
// all its descendents. It resembles
//
//	document.getElementById("myNode").innerText
//
// in JavaScript, except that it cannot respect CSS styling.
func InnerText(n *html.Node) (string, []msgbody.Range, error) {
	if n == nil {
		return "", nil, msgbody.ErrIllegalArguments
	}
	c := &collector{}
	c.collect(n)
	text, ranges := c.result()
	return text, ranges, nil
}

type collector struct {
	b      strings.Builder
	pos    int // current position in runes
	ranges []msgbody.Range
}

func (c *collector) collect(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		tracer().Debugf("inline: text %q at %d", n.Data, c.pos)
		c.b.WriteString(n.Data)
		c.pos += utf8.RuneCountInString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "mention":
			c.mention(n)
			return
		case "br":
			c.b.WriteByte('\n')
			c.pos++
			return
		}
		if style, ok := StyleFromHTML(n); ok {
			// declared before nested elements, so inner elements win ties
			i := len(c.ranges)
			c.ranges = append(c.ranges, msgbody.StyleRange{Start: c.pos, Style: style})
			c.children(n)
			r := c.ranges[i].(msgbody.StyleRange)
			r.Length = c.pos - r.Start
			c.ranges[i] = r
			return
		}
	}
	c.children(n)
}

func (c *collector) children(n *html.Node) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.collect(ch)
	}
}

func (c *collector) mention(n *html.Node) {
	m := msgbody.MentionRange{
		Start:          c.pos,
		Length:         1,
		MentionID:      attr(n, "data-id"),
		ConversationID: attr(n, "data-conversation"),
		DisplayText:    attr(n, "data-name"),
	}
	if m.DisplayText == "" {
		inner := &collector{}
		inner.children(n)
		m.DisplayText = strings.TrimSpace(inner.b.String())
	}
	tracer().Debugf("inline: mention %q at %d", m.MentionID, c.pos)
	c.b.WriteRune(msgbody.Placeholder)
	c.pos++
	c.ranges = append(c.ranges, m)
}

// result returns the collected text and all ranges of non-zero length.
func (c *collector) result() (string, []msgbody.Range) {
	ranges := c.ranges[:0]
	for _, r := range c.ranges {
		if r.Span().Length > 0 {
			ranges = append(ranges, r)
		}
	}
	return c.b.String(), ranges
}
